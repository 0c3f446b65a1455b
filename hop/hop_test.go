package hop

import "testing"

func TestInitialState(t *testing.T) {
	h := New()
	if !h.IsInitialState() {
		t.Fatal("new ChannelHopping is not at initial state")
	}
	if h.State() != 0 {
		t.Fatalf("state = %d, want 0", h.State())
	}
	if h.CurrentChannel() != Sequence[0] {
		t.Fatalf("current channel = %d, want %d", h.CurrentChannel(), Sequence[0])
	}
}

// S2 from spec.md §8: hop cycle with the L=100 sequence.
func TestFullCycleReturnsToInitialState(t *testing.T) {
	h := New()
	for i := 0; i < len(Sequence); i++ {
		h.NextChannel()
	}
	if !h.IsInitialState() {
		t.Fatalf("state = %d after full cycle, want 0", h.State())
	}
	if h.CurrentChannel() != 47 {
		t.Fatalf("current channel = %d, want 47", h.CurrentChannel())
	}
}

func TestStateStaysInBounds(t *testing.T) {
	h := New()
	for i := 0; i < 10*len(Sequence)+7; i++ {
		if h.State() < 0 || h.State() >= h.Len() {
			t.Fatalf("state %d out of bounds [0,%d)", h.State(), h.Len())
		}
		if h.CurrentChannel() != Sequence[h.State()] {
			t.Fatalf("current channel does not match sequence at state %d", h.State())
		}
		h.NextChannel()
	}
}

// Any number of next_channel() calls from an arbitrary starting state returns to that
// state after exactly L calls.
func TestCycleFromArbitraryStart(t *testing.T) {
	for start := 0; start < len(Sequence); start += 7 {
		h := New()
		for i := 0; i < start; i++ {
			h.NextChannel()
		}
		want := h.State()
		for i := 0; i < h.Len(); i++ {
			h.NextChannel()
		}
		if h.State() != want {
			t.Fatalf("start=%d: state after full cycle = %d, want %d", start, h.State(), want)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	h := New()
	h.NextChannel()
	h.NextChannel()
	h.Reset()
	h.Reset()
	if h.State() != 0 {
		t.Fatalf("state after two resets = %d, want 0", h.State())
	}
}

// Anti-adjacency: adjacent sequence entries must differ by more than one channel.
func TestAntiAdjacency(t *testing.T) {
	for i := range Sequence {
		a := int(Sequence[i])
		b := int(Sequence[(i+1)%len(Sequence)])
		d := a - b
		if d < 0 {
			d = -d
		}
		if d <= 1 {
			t.Fatalf("adjacent channels %d -> %d differ by %d, want > 1", a, b, d)
		}
	}
}

// Coverage: the table should use a good portion of the IEEE 802.15.4 channel alphabet
// (2400+ch MHz, ch in 0..=100); spot-check that values stay in range.
func TestChannelsInRange(t *testing.T) {
	for _, ch := range Sequence {
		if ch > 100 {
			t.Fatalf("channel %d out of range 0..=100", ch)
		}
	}
}

func TestNewWithSequenceLen(t *testing.T) {
	h := NewWithSequence([]uint8{1, 2, 3})
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	for i := 0; i < 3; i++ {
		h.NextChannel()
	}
	if !h.IsInitialState() {
		t.Fatal("expected initial state after 3 next_channel calls on length-3 sequence")
	}
}

func TestNewWithSequenceEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty sequence")
		}
	}()
	NewWithSequence(nil)
}
