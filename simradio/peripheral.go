package simradio

import (
	"context"
	"sync"

	"github.com/korken89/crkbd-shockburst/clock"
	"github.com/korken89/crkbd-shockburst/nrfradio"
	"github.com/korken89/crkbd-shockburst/packet"
)

// Peripheral is a simulated nrfradio.Peripheral backed by a Medium. Each Peripheral
// models one physical radio (one dongle or one keyboard half); pair it with
// nrfradio.Init to get a usable Driver.
type Peripheral struct {
	medium *Medium
	clk    clock.Clock

	mu      sync.Mutex
	channel uint8
	cca     nrfradio.Cca
	sfd     uint8
	power   nrfradio.TxPower
	shorts  nrfradio.Shorts
	state   nrfradio.State
	ptr     *packet.Packet

	listenCh chan Frame

	addrTs uint32
	rssi   int8
	crcOK  bool
	crc    uint16

	phyEndArmed bool
	phyEndTs    uint32
	phyEndRssi  int8
}

// New returns a Peripheral tuned to channel 0, in the Disabled state, sharing medium with
// every other Peripheral constructed against it.
func New(medium *Medium, clk clock.Clock) *Peripheral {
	return &Peripheral{medium: medium, clk: clk, state: nrfradio.StateDisabled, crcOK: true}
}

func (p *Peripheral) SetChannel(ch uint8)           { p.mu.Lock(); p.channel = ch; p.mu.Unlock() }
func (p *Peripheral) SetCCA(c nrfradio.Cca)         { p.mu.Lock(); p.cca = c; p.mu.Unlock() }
func (p *Peripheral) SetSFD(sfd uint8)              { p.mu.Lock(); p.sfd = sfd; p.mu.Unlock() }
func (p *Peripheral) SetTXPower(v nrfradio.TxPower) { p.mu.Lock(); p.power = v; p.mu.Unlock() }

func (p *Peripheral) State() nrfradio.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Peripheral) SetShorts(s nrfradio.Shorts) { p.mu.Lock(); p.shorts = s; p.mu.Unlock() }

func (p *Peripheral) SetPacketPtr(pk *packet.Packet) { p.mu.Lock(); p.ptr = pk; p.mu.Unlock() }

func (p *Peripheral) TasksDisable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopListeningLocked()
	p.state = nrfradio.StateDisabled
}

func (p *Peripheral) TasksRxEn() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = nrfradio.StateRxIdle
}

func (p *Peripheral) TasksTxEn() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopListeningLocked()
	p.state = nrfradio.StateTxIdle
}

// TasksStart begins the DMA transfer for the packet at the current pointer: a receive if
// the peripheral is in RxIdle, or an unconditional (send_no_cca) transmit if in TxIdle.
func (p *Peripheral) TasksStart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case nrfradio.StateRxIdle:
		p.listenCh = p.medium.listen(p, p.channel)
	case nrfradio.StateTxIdle:
		p.transmitLocked()
	}
}

func (p *Peripheral) TasksStop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopListeningLocked()
}

func (p *Peripheral) stopListeningLocked() {
	if p.listenCh != nil {
		p.medium.stopListening(p, p.channel)
		p.listenCh = nil
	}
}

// TasksCcaStart performs Clear Channel Assessment, which this simulated Medium always
// reports idle, then immediately transmits (the hardware shortcut chain CCAIDLE->TXEN->
// TXREADY->START collapses to one step here).
func (p *Peripheral) TasksCcaStart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transmitLocked()
}

func (p *Peripheral) TasksCcaStop() {}

// transmitLocked must be called with p.mu held. It sends the current packet's bytes onto
// the medium and arms PhyEnd for the next WaitEvent call.
func (p *Peripheral) transmitLocked() {
	raw := append([]byte(nil), p.ptr.Bytes()...)
	ts := uint32(p.clk.Now())
	// simulatedRssi stands in for a real signal strength reading: this Medium has no
	// path-loss model, so every frame arrives at a fixed, plausible strength.
	const simulatedRssi = 60
	p.medium.transmit(p, p.channel, Frame{Raw: raw, Ts: ts, Rssi: simulatedRssi})
	p.phyEndArmed = true
	p.phyEndTs = ts
}

func (p *Peripheral) WaitEvent(ctx context.Context, ev nrfradio.Event) error {
	switch ev {
	case nrfradio.EventEnd:
		p.mu.Lock()
		ch := p.listenCh
		p.mu.Unlock()
		select {
		case f := <-ch:
			p.mu.Lock()
			copy(p.ptr.Bytes(), f.Raw)
			p.addrTs = f.Ts
			p.rssi = f.Rssi
			p.crcOK = true
			p.mu.Unlock()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}

	case nrfradio.EventPhyEnd:
		p.mu.Lock()
		if p.phyEndArmed {
			p.phyEndArmed = false
			p.addrTs = p.phyEndTs
			p.mu.Unlock()
			return nil
		}
		p.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()

	case nrfradio.EventCcaBusy:
		// This Medium never reports CCA busy; a real implementation would race this
		// against an interferer's in-flight transmission.
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (p *Peripheral) AddressTimestamp() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addrTs
}

func (p *Peripheral) RSSISample() int8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rssi
}

func (p *Peripheral) CRCStatus() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crcOK
}

func (p *Peripheral) RxCRC() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.crc
}

var _ nrfradio.Peripheral = (*Peripheral)(nil)
