package protocol

import (
	"bytes"
	"context"

	"github.com/korken89/crkbd-shockburst/clock"
	"github.com/korken89/crkbd-shockburst/hop"
	"github.com/korken89/crkbd-shockburst/nrfradio"
	"github.com/korken89/crkbd-shockburst/packet"
)

// State names the two states of a keyboard half's radio (spec.md §3).
type State int

const (
	StateLookingForSync State = iota
	StateSynchronized
)

func (s State) String() string {
	if s == StateSynchronized {
		return "synchronized"
	}
	return "looking_for_sync"
}

// RunKeyboardHalf runs one keyboard half's side of the protocol (C7): it listens for the
// dongle's beacon, projects its own slot timeline from the beacon's timestamp, then
// transmits its key-state snapshot and listens for an ack in every owned slot until the
// hop sequence wraps, at which point it resynchronizes.
//
// maxMissedBeacons controls how many consecutive frame wraps this half will dead-reckon
// its slot timeline across without actually hearing a fresh beacon, instead of falling
// back to StateLookingForSync on every single wrap (spec.md §4.6's literal behavior,
// preserved as the maxMissedBeacons == 0 default — see the design notes on this open
// question). A half that dead-reckons past a beacon it didn't truly hear has no way to
// correct clock drift until it next resynchronizes, so larger values trade acquisition
// overhead for sensitivity to missed beacons.
func RunKeyboardHalf(ctx context.Context, drv *nrfradio.Driver, clk clock.Clock, h *hop.ChannelHopping, role Role, keys KeyStateSource, maxMissedBeacons int) error {
	pkt := packet.New()

	var syncTime uint64
	framesSinceSync := 0
	needAcquire := true

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if needAcquire {
			st, err := acquireSync(ctx, drv, clk, h, pkt)
			if err != nil {
				return err
			}
			syncTime = st
			framesSinceSync = 0
			logf("protocol: %s half acquired sync at %d", role, syncTime)
		} else {
			// Dead-reckon: project the beacon we didn't listen for one frame length
			// past the last one we actually heard (or dead-reckoned from).
			syncTime += uint64(h.Len()) * SlotSize
		}

		nextSlotTime := projectFirstSlot(h, role, syncTime)

		if err := runSynchronizedFrame(ctx, drv, clk, h, keys, pkt, nextSlotTime); err != nil {
			return err
		}

		framesSinceSync++
		needAcquire = framesSinceSync > maxMissedBeacons
	}
}

// acquireSync implements StateLookingForSync: it resets the hop selector to the beacon
// channel and blocks until it receives a valid sync frame there, returning the frame's
// widened 64-bit timestamp.
func acquireSync(ctx context.Context, drv *nrfradio.Driver, clk clock.Clock, h *hop.ChannelHopping, pkt *packet.Packet) (uint64, error) {
	h.Reset()
	drv.SetChannel(h.CurrentChannel())

	for {
		ts, _, err := drv.Recv(ctx, pkt)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			// CRC failure or similar: keep listening on the beacon channel.
			continue
		}
		if h.IsInitialState() && bytes.Equal(pkt.Payload(), syncSentinel[:]) {
			now64 := clk.Now()
			return nrfradio.Widen(now64, ts), nil
		}
	}
}

// projectFirstSlot advances h past the beacon slot to this half's first owned slot and
// returns that slot's start time, per spec.md §4.6's role-dependent projection.
func projectFirstSlot(h *hop.ChannelHopping, role Role, syncTime uint64) uint64 {
	switch role {
	case RoleRight:
		h.NextChannel()
		return syncTime + SlotSize
	default: // RoleLeft
		h.NextChannel()
		h.NextChannel()
		return syncTime + 2*SlotSize
	}
}

// runSynchronizedFrame implements StateSynchronized for one frame: transmit, listen for
// the ack, skip the other half's slot, repeat until the hop selector wraps back to the
// beacon channel.
func runSynchronizedFrame(ctx context.Context, drv *nrfradio.Driver, clk clock.Clock, h *hop.ChannelHopping, keys KeyStateSource, pkt *packet.Packet, nextSlotTime uint64) error {
	for {
		drv.SetChannel(h.CurrentChannel())

		if err := clk.DelayUntil(ctx, nextSlotTime); err != nil {
			return err
		}

		pkt.CopyFromSlice(keys.Snapshot())
		if _, err := drv.SendNoCca(ctx, pkt); err != nil {
			return err
		}

		deadline := nextSlotTime + SlotSize - Guard
		ackErr := clock.TimeoutAt(ctx, clk, deadline, func(rctx context.Context) error {
			_, _, err := drv.Recv(rctx, pkt)
			return err
		})
		if ackErr != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		for i := 0; i < 2; i++ {
			nextSlotTime += SlotSize
			h.NextChannel()
			if h.IsInitialState() {
				return nil
			}
		}
	}
}
