package protocol

import (
	"context"

	"github.com/korken89/crkbd-shockburst/clock"
	"github.com/korken89/crkbd-shockburst/hop"
	"github.com/korken89/crkbd-shockburst/nrfradio"
	"github.com/korken89/crkbd-shockburst/packet"
	"github.com/korken89/crkbd-shockburst/telemetry"
)

// LogPrintf is called with one line per frame boundary and per missed/acked slot when
// non-nil, following this module's optional-logging convention.
var LogPrintf func(format string, v ...interface{})

func logf(format string, v ...interface{}) {
	if LogPrintf != nil {
		LogPrintf(format, v...)
	}
}

// RunDongle runs the dongle's side of the protocol (C6): it emits the beacon at the start
// of every frame, then polls each remaining slot in turn, acknowledging anything it
// receives. It runs until ctx is cancelled or the driver reports an unrecoverable error.
//
// pub may be nil, in which case no telemetry is published (spec.md §9 lists the MQTT
// wiring as a supplemented, not required, feature).
func RunDongle(ctx context.Context, drv *nrfradio.Driver, clk clock.Clock, h *hop.ChannelHopping, pub telemetry.Publisher) error {
	pkt := packet.New()
	slotStart := clk.Now() + SlotSize

	for {
		if err := clk.DelayUntil(ctx, slotStart); err != nil {
			return err
		}

		h.Reset()
		drv.SetChannel(h.CurrentChannel())
		pkt.CopyFromSlice(syncSentinel[:])
		if _, err := drv.SendNoCca(ctx, pkt); err != nil {
			return err
		}
		logf("protocol: beacon sent on channel %d at slot time %d", h.CurrentChannel(), slotStart)

		h.NextChannel()
		slotStart += SlotSize

		var successes, misses int
		for !h.IsInitialState() {
			drv.SetChannel(h.CurrentChannel())

			deadline := slotStart + SlotSize - Guard
			recvErr := clock.TimeoutAt(ctx, clk, deadline, func(rctx context.Context) error {
				_, _, err := drv.Recv(rctx, pkt)
				return err
			})

			if recvErr == nil {
				pkt.CopyFromSlice(ackPayload[:])
				if _, err := drv.SendNoCca(ctx, pkt); err != nil {
					return err
				}
				successes++
				logf("protocol: got data, channel %d, acked", h.CurrentChannel())
			} else {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				misses++
				logf("protocol: no data, channel %d (%v)", h.CurrentChannel(), recvErr)
			}

			h.NextChannel()
			slotStart += SlotSize
		}

		if pub != nil {
			pub.Publish(telemetry.FrameStats{Successes: successes, Misses: misses})
		}
	}
}
