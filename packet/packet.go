// Package packet implements the on-air frame layout used by the radio driver.
//
// A Packet is the physical-layer unit the RADIO peripheral's DMA engine reads from and
// writes into directly: byte 0 is the PHY header (PHR), the remaining bytes are the PSDU
// (payload followed by a hardware-computed CRC that is never exposed to callers). Keeping
// the PHR in the same buffer DMA reads means there is no separate length channel and no
// extra copy.
package packet

import "fmt"

// Capacity is the maximum usable payload size, in bytes, excluding the CRC.
const Capacity = 125

// crcLen is the size, in bytes, of the hardware-computed CRC appended on air. It is
// counted in the PHR and the buffer reserves room for it, but Payload never exposes it.
const crcLen = 2

// maxPSDU is the largest PSDU the PHY will accept: payload plus CRC.
const maxPSDU = Capacity + crcLen

// size is the total buffer size: one PHR byte plus the maximum PSDU.
const size = 1 + maxPSDU

// Packet is a fixed-capacity, DMA-addressable frame buffer.
//
// It is a value type with inline storage: no heap indirection, no growable container. The
// RADIO peripheral needs a stable address for the duration of a send or receive, and the
// caller is expected to hold the only reference to a Packet while it is in flight (mirrors
// the exclusive mutable borrow the original firmware relies on).
type Packet struct {
	buffer [size]byte
}

// New returns an empty packet (payload length zero).
func New() *Packet {
	p := &Packet{}
	p.SetLen(0)
	return p
}

// CopyFromSlice fills the packet's payload with src and updates the PHR accordingly.
//
// It panics if src is longer than Capacity; that is a programmer error, not a runtime
// condition the protocol layer is expected to recover from.
func (p *Packet) CopyFromSlice(src []byte) {
	if len(src) > Capacity {
		panic(fmt.Sprintf("packet: payload of %d bytes exceeds capacity %d", len(src), Capacity))
	}
	copy(p.buffer[1:], src)
	p.SetLen(len(src))
}

// Len returns the current payload length.
func (p *Packet) Len() int {
	return int(p.buffer[0]) - crcLen
}

// SetLen changes the payload length recorded in the PHR without touching the payload
// bytes. It panics if n exceeds Capacity.
func (p *Packet) SetLen(n int) {
	if n > Capacity || n < 0 {
		panic(fmt.Sprintf("packet: invalid length %d", n))
	}
	p.buffer[0] = byte(n + crcLen)
}

// Payload returns the current payload bytes.
func (p *Packet) Payload() []byte {
	n := p.Len()
	return p.buffer[1 : 1+n]
}

// PayloadMut returns a mutable view of the current payload bytes, for in-place writes
// that don't change the length (e.g. the driver copying in a received frame).
func (p *Packet) PayloadMut() []byte {
	n := p.Len()
	return p.buffer[1 : 1+n]
}

// PHR returns the physical header byte (payload length + CRC length).
func (p *Packet) PHR() byte {
	return p.buffer[0]
}

// Bytes returns the full on-air buffer (PHR + PSDU capacity), for the driver to hand to
// DMA. Callers outside the driver should not need this.
func (p *Packet) Bytes() []byte {
	return p.buffer[:]
}
