// Package hop implements the channel-hopping selector shared by every peer: a
// deterministic, reset-able sequence of PHY channels indexed by slot number.
//
// The sequence is a compile-time constant; it is never transmitted over the air. Every
// peer embeds the identical table and derives its current channel purely from its own
// slot count, kept in lock-step by the beacon (see package protocol).
package hop

// Sequence is the channel-hopping table used by the dongle and both keyboard halves.
//
// It is the one table retrievable from the original firmware's history (the draft
// firmware/src/radio_protocol.rs kept in original_source/): a length-100 permutation of
// channels 1..100 (2400+ch MHz; channel 0 is not in the table), pre-shuffled so adjacent
// entries never differ by exactly one channel. Slot 0's channel (47) anchors the beacon.
var Sequence = [100]uint8{
	47, 84, 37, 45, 74, 13, 44, 75, 67, 28, 65, 51, 68, 7, 89, 9, 16, 63, 8, 87, 23, 99, 57,
	69, 12, 26, 83, 30, 78, 97, 33, 77, 41, 34, 86, 42, 70, 95, 6, 73, 88, 2, 72, 59, 4, 25,
	53, 96, 20, 5, 39, 92, 82, 71, 29, 43, 1, 94, 32, 17, 60, 90, 56, 27, 11, 55, 62, 79, 98,
	64, 14, 52, 100, 93, 76, 46, 85, 58, 18, 3, 15, 40, 10, 19, 48, 61, 80, 36, 54, 21, 81, 38,
	22, 49, 91, 31, 66, 50, 35, 24,
}

// ChannelHopping is a (sequence, state) pair: the current position within a channel
// table. Construct it with New or NewWithSequence: the zero value has no table, and its
// CurrentChannel and NextChannel panic.
type ChannelHopping struct {
	seq   []uint8
	state int
}

// New returns a ChannelHopping over Sequence, starting at state 0.
func New() *ChannelHopping {
	return NewWithSequence(Sequence[:])
}

// NewWithSequence returns a ChannelHopping over an arbitrary table, starting at state 0.
// seq must be non-empty; its length becomes L, the number of slots per frame.
func NewWithSequence(seq []uint8) *ChannelHopping {
	if len(seq) == 0 {
		panic("hop: sequence must not be empty")
	}
	return &ChannelHopping{seq: seq}
}

// CurrentChannel returns the channel for the current state.
func (h *ChannelHopping) CurrentChannel() uint8 {
	return h.seq[h.state]
}

// NextChannel advances to the next state, wrapping at the end of the table.
func (h *ChannelHopping) NextChannel() {
	h.state = (h.state + 1) % len(h.seq)
}

// Reset returns the selector to state 0.
func (h *ChannelHopping) Reset() {
	h.state = 0
}

// IsInitialState reports whether the selector is at state 0, i.e. a new frame is
// starting.
func (h *ChannelHopping) IsInitialState() bool {
	return h.state == 0
}

// State returns the current state (slot index within the frame).
func (h *ChannelHopping) State() int {
	return h.state
}

// Len returns L, the number of slots per frame.
func (h *ChannelHopping) Len() int {
	return len(h.seq)
}
