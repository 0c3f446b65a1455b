// Package simradio is a software stand-in for the nRF52840 RADIO peripheral: it
// implements package nrfradio's Peripheral interface against a shared, in-process
// Medium instead of real silicon, the way periph.io's host/bcm283x package models a
// hardware DMA engine's behavior in software for test and simulation purposes.
//
// It lets cmd/shockburst-sim run the full dongle/keyboard protocol stack as ordinary
// goroutines on a developer's machine, with no nRF52840 present.
package simradio

import "sync"

// Frame is a payload handed between Peripherals over a Medium: the full on-air buffer
// (PHR + PSDU, see package packet) plus the values the real hardware would have latched
// for the receiver.
type Frame struct {
	Raw  []byte
	Ts   uint32
	Rssi int8
}

// Medium is a shared broadcast channel selector: every Peripheral tuned to the same
// channel and currently listening receives every frame transmitted on it. There is no
// simulated propagation delay, attenuation, or collision; Clear Channel Assessment always
// reports the channel idle (see Peripheral.TasksCcaStart).
type Medium struct {
	mu        sync.Mutex
	listeners map[uint8]map[*Peripheral]chan Frame
}

// NewMedium returns an empty, ready-to-use Medium.
func NewMedium() *Medium {
	return &Medium{listeners: make(map[uint8]map[*Peripheral]chan Frame)}
}

func (m *Medium) listen(p *Peripheral, channel uint8) chan Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make(chan Frame, 1)
	if m.listeners[channel] == nil {
		m.listeners[channel] = make(map[*Peripheral]chan Frame)
	}
	m.listeners[channel][p] = c
	return c
}

func (m *Medium) stopListening(p *Peripheral, channel uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners[channel], p)
}

// transmit delivers frame to every other Peripheral currently listening on channel. A
// listener that isn't ready to receive (its buffered slot is full) misses the frame,
// standing in for a real collision or a receiver that woke up too late.
func (m *Medium) transmit(from *Peripheral, channel uint8, frame Frame) {
	m.mu.Lock()
	recipients := make([]chan Frame, 0, len(m.listeners[channel]))
	for p, c := range m.listeners[channel] {
		if p != from {
			recipients = append(recipients, c)
		}
	}
	m.mu.Unlock()

	for _, c := range recipients {
		select {
		case c <- frame:
		default:
		}
	}
}
