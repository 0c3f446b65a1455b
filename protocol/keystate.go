package protocol

// KeyStateSource is the single hook RunKeyboardHalf uses to obtain the payload it
// transmits each slot. It stands in for the key-matrix scanner, debouncer, and HID report
// builder, all of which are out of scope for this module (spec.md §1): whatever produces
// key-state snapshots need only implement this interface.
type KeyStateSource interface {
	// Snapshot returns the bytes to transmit in the next owned slot. The returned slice
	// must not exceed packet.Capacity and must not be mutated after it is returned: the
	// caller may retain it only until the next call to Snapshot.
	Snapshot() []byte
}

// StaticKeyState is a KeyStateSource that always returns the same payload. Useful for
// tests and for cmd/shockburst-sim, where there is no real key matrix to scan.
type StaticKeyState struct {
	payload []byte
}

// NewStaticKeyState returns a StaticKeyState that always reports payload.
func NewStaticKeyState(payload []byte) *StaticKeyState {
	return &StaticKeyState{payload: payload}
}

// Snapshot implements KeyStateSource.
func (s *StaticKeyState) Snapshot() []byte {
	return s.payload
}

var _ KeyStateSource = (*StaticKeyState)(nil)
