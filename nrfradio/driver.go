package nrfradio

import (
	"context"
	"fmt"

	"periph.io/x/periph/conn/physic"

	"github.com/korken89/crkbd-shockburst/packet"
)

// ChannelFrequency reports the center frequency a channel number selects, per the
// "2400 MHz + value" mapping. It exists for logging and diagnostics; the driver itself
// only ever deals in raw channel numbers, matching the peripheral's own FREQUENCY
// register contract.
func ChannelFrequency(ch uint8) physic.Frequency {
	return physic.Frequency(2400+int64(ch)) * physic.MegaHertz
}

// LogPrintf is called with trace-level detail about driver operations when non-nil,
// following the optional-logging convention used throughout this module.
var LogPrintf func(format string, v ...interface{})

func logf(format string, v ...interface{}) {
	if LogPrintf != nil {
		LogPrintf(format, v...)
	}
}

// Timestamp is a raw, 32-bit, 1 MHz address-capture timestamp. See package clock and
// Widen for converting it to an absolute 64-bit tick.
type Timestamp uint32

// Rssi is a received signal strength, in dBm (negative).
type Rssi int8

// CrcError reports that a received packet failed the hardware CRC check. Crc carries the
// raw (failing) CRC value the peripheral computed.
type CrcError struct {
	Crc uint16
}

func (e *CrcError) Error() string {
	return fmt.Sprintf("nrfradio: CRC check failed, got %#04x", e.Crc)
}

// Driver is the IEEE 802.15.4 driver: it owns a Peripheral exclusively and exposes
// recv/send/send_no_cca plus the channel/CCA/SFD/power configuration calls (spec.md §6).
//
// A Driver is not safe for concurrent use: exactly one goroutine drives the radio at a
// time, mirroring the single-owner exclusive borrow the original firmware enforces on the
// packet buffer and DMA pointer (spec.md §5).
type Driver struct {
	p           Peripheral
	needsEnable bool
}

// Init brings p to a known state and applies the IEEE defaults (spec.md §6): channel 11,
// carrier-sense CCA, the IEEE SFD, and 0 dBm TX power.
func Init(p Peripheral) *Driver {
	d := &Driver{p: p}
	d.disable()

	d.SetChannel(DefaultChannel)
	d.SetCCA(DefaultCca)
	d.SetSFD(DefaultSFD)
	d.SetTXPower(DefaultTxPower)

	return d
}

// SetChannel changes the radio channel. Takes effect on the next ramp-up.
func (d *Driver) SetChannel(ch uint8) {
	d.needsEnable = true
	d.p.SetChannel(ch)
	logf("nrfradio: channel %d (%s)", ch, ChannelFrequency(ch))
}

// SetCCA changes the Clear Channel Assessment method. Takes effect on the next ramp-up.
func (d *Driver) SetCCA(c Cca) {
	d.needsEnable = true
	d.p.SetCCA(c)
}

// SetSFD changes the Start of Frame Delimiter. Unlike the other setters this does not
// require a ramp-up to take effect.
func (d *Driver) SetSFD(sfd uint8) {
	d.p.SetSFD(sfd)
}

// SetTXPower changes the transmit power. Takes effect on the next ramp-up.
func (d *Driver) SetTXPower(p TxPower) {
	d.needsEnable = true
	d.p.SetTXPower(p)
}

// Recv receives one packet into pkt, blocking until a frame arrives, ctx is cancelled, or
// the operation is otherwise interrupted.
//
// It returns the CrcError variant if the hardware CRC check failed; pkt is still updated
// with the received bytes in that case, matching the original driver's "packet is written
// either way" contract.
func (d *Driver) Recv(ctx context.Context, pkt *packet.Packet) (Timestamp, Rssi, error) {
	d.startRecv(pkt)

	err := d.p.WaitEvent(ctx, EventEnd)
	if err != nil {
		d.cancelRecv()
		return 0, 0, err
	}

	ts := Timestamp(d.p.AddressTimestamp())
	rssi := Rssi(-d.p.RSSISample())

	logf("nrfradio: rx complete, address at %d, rssi %d dBm", ts, rssi)

	if !d.p.CRCStatus() {
		return ts, rssi, &CrcError{Crc: d.p.RxCRC()}
	}
	return ts, rssi, nil
}

func (d *Driver) startRecv(pkt *packet.Packet) {
	d.putInRxMode()
	d.p.SetPacketPtr(pkt)
	d.p.TasksStart()
	logf("nrfradio: start receiving")
}

// cancelRecv forces the peripheral to STOP and waits for RxIdle, guaranteeing the DMA
// engine has released the packet buffer before the caller reuses it. This is the Go
// equivalent of the original driver's drop-time cancellation guard (spec.md §5).
func (d *Driver) cancelRecv() {
	d.p.TasksStop()
	for d.p.State() != StateRxIdle {
	}
}

// Send transmits pkt after a successful Clear Channel Assessment, retrying CCA for as
// long as the channel is busy. Callers needing a bound on retry time should wrap the call
// with clock.TimeoutAt.
//
// pkt is not modified.
func (d *Driver) Send(ctx context.Context, pkt *packet.Packet) (Timestamp, error) {
	d.putInRxMode()

	d.p.SetShorts(ShortCcaIdleTxEn | ShortTxReadyStart | ShortEndDisable)
	d.p.SetPacketPtr(pkt)
	d.p.TasksCcaStart()

	logf("nrfradio: searching for CCA")

	for {
		ev, err := waitAny(ctx, d.p, EventPhyEnd, EventCcaBusy)
		if err != nil {
			d.cancelSend()
			return 0, err
		}
		if ev == EventPhyEnd {
			break
		}
		// EventCcaBusy: retry CCA.
		d.p.TasksCcaStart()
		logf("nrfradio: collision, retrying CCA")
	}

	ts := Timestamp(d.p.AddressTimestamp())
	logf("nrfradio: tx complete, address sent at %d", ts)

	d.p.SetShorts(0)
	return ts, nil
}

// cancelSend stops an in-flight CCA/transmit and waits for the peripheral to settle in
// RxIdle, applying the same buffer-safety guard Recv uses (spec.md §5 notes the original
// TX paths do not do this; this port adds it symmetrically).
func (d *Driver) cancelSend() {
	d.p.TasksCcaStop()
	d.p.TasksStop()
	for d.p.State() != StateRxIdle {
	}
	d.p.SetShorts(0)
}

// SendNoCca transmits pkt immediately, without Clear Channel Assessment. Used for
// acknowledgment frames, which must leave before the enclosing slot ends (spec.md §4.5).
//
// pkt is not modified.
func (d *Driver) SendNoCca(ctx context.Context, pkt *packet.Packet) (Timestamp, error) {
	d.putInTxMode()

	d.p.SetPacketPtr(pkt)
	d.p.SetShorts(ShortEndDisable)
	d.p.TasksStart()

	if err := d.p.WaitEvent(ctx, EventPhyEnd); err != nil {
		d.cancelSendNoCca()
		return 0, err
	}

	ts := Timestamp(d.p.AddressTimestamp())
	d.p.SetShorts(0)
	return ts, nil
}

func (d *Driver) cancelSendNoCca() {
	d.p.TasksStop()
	for d.p.State() != StateTxIdle && d.p.State() != StateDisabled {
	}
	d.p.SetShorts(0)
}

// disable moves the peripheral to Disabled from any state.
func (d *Driver) disable() {
	d.p.TasksDisable()
	for d.p.State() != StateDisabled {
	}
}

// putInRxMode moves the peripheral to RxIdle, taking the erratum-204 detour through
// Disabled when coming from TxIdle (spec.md §6; nRF52840 erratum 204).
func (d *Driver) putInRxMode() {
	state := d.p.State()

	var needDisable, needEnable bool
	switch state {
	case StateDisabled:
		needEnable = true
	case StateRxIdle:
		needEnable = d.needsEnable
	case StateTxIdle:
		needDisable = true
		needEnable = true
	}

	d.p.SetShorts(ShortAddressRssiStart | ShortDisabledRssiStop)

	if needDisable {
		d.p.TasksDisable()
		for d.p.State() != StateDisabled {
		}
	}

	if needEnable {
		d.needsEnable = false
		d.p.TasksRxEn()
		for d.p.State() != StateRxIdle {
		}
	}
}

// putInTxMode moves the peripheral to TxIdle.
func (d *Driver) putInTxMode() {
	if d.p.State() != StateTxIdle || d.needsEnable {
		d.needsEnable = false
		d.p.TasksTxEn()
		for d.p.State() != StateTxIdle {
		}
	}
}
