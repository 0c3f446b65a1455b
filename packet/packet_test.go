package packet

import (
	"bytes"
	"testing"
)

func TestNewIsEmpty(t *testing.T) {
	p := New()
	if p.Len() != 0 {
		t.Fatalf("new packet length = %d, want 0", p.Len())
	}
	if p.PHR() != crcLen {
		t.Fatalf("new packet PHR = %d, want %d", p.PHR(), crcLen)
	}
}

// S1 from spec.md §8: packet round-trip.
func TestCopyFromSliceRoundTrip(t *testing.T) {
	p := New()
	src := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	p.CopyFromSlice(src)

	if p.Len() != len(src) {
		t.Fatalf("len = %d, want %d", p.Len(), len(src))
	}
	if p.PHR() != 12 {
		t.Fatalf("PHR = %d, want 12", p.PHR())
	}
	if !bytes.Equal(p.Payload(), src) {
		t.Fatalf("payload = %v, want %v", p.Payload(), src)
	}
}

var roundtrips = map[string][]byte{
	"empty": {},
	"one":   {0x42},
	"max":   bytes.Repeat([]byte{0xaa}, Capacity),
}

func TestCopyFromSliceVariousLengths(t *testing.T) {
	for name, src := range roundtrips {
		p := New()
		p.CopyFromSlice(src)
		if p.Len() != len(src) {
			t.Fatalf("%s: len = %d, want %d", name, p.Len(), len(src))
		}
		if !bytes.Equal(p.Payload(), src) {
			t.Fatalf("%s: payload = %v, want %v", name, p.Payload(), src)
		}
	}
}

func TestCopyFromSliceTooLongPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized payload")
		}
	}()
	p := New()
	p.CopyFromSlice(bytes.Repeat([]byte{0}, Capacity+1))
}

func TestSetLenTooLargePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized length")
		}
	}()
	p := New()
	p.SetLen(Capacity + 1)
}

func TestInvariant(t *testing.T) {
	for n := 0; n <= Capacity; n += 17 {
		p := New()
		p.CopyFromSlice(bytes.Repeat([]byte{0x5a}, n))
		if int(p.PHR()) != p.Len()+crcLen {
			t.Fatalf("invariant broken for n=%d: PHR=%d len=%d", n, p.PHR(), p.Len())
		}
		if p.Len() > Capacity {
			t.Fatalf("len %d exceeds capacity", p.Len())
		}
	}
}
