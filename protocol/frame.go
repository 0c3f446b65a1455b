// Package protocol implements the TDMA, frequency-hopping frame protocol run on top of
// package nrfradio: the dongle's beacon-and-poll loop (RunDongle) and a keyboard half's
// acquire-and-transmit loop (RunKeyboardHalf).
//
// Slot 0 of every frame carries the dongle's beacon; slots 1..L-1 are keyboard slots,
// odd indices belonging to the right half and even indices to the left half. Every peer
// derives its current PHY channel from the same package hop sequence, keeping the
// assignment implicit rather than transmitted.
package protocol

// SlotSize is the duration of one TDMA slot.
const SlotSize uint64 = 2000 // microseconds

// Guard is how far before the end of a slot a receiver gives up waiting for a frame, to
// leave time to switch channel and arm the next slot.
const Guard uint64 = 200 // microseconds

// syncSentinel is the fixed payload that marks a beacon frame.
var syncSentinel = [10]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// ackPayload is the fixed payload the dongle sends to acknowledge a received slot.
var ackPayload = [10]byte{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

// Role identifies which keyboard half a RunKeyboardHalf caller is running, which
// determines the parity of slots it owns.
type Role int

const (
	// RoleRight owns odd slot indices and speaks first in a frame (slot 1).
	RoleRight Role = iota
	// RoleLeft owns even, non-zero slot indices and speaks second (slot 2).
	RoleLeft
)

func (r Role) String() string {
	switch r {
	case RoleRight:
		return "right"
	case RoleLeft:
		return "left"
	default:
		return "unknown"
	}
}
