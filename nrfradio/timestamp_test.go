package nrfradio

import "testing"

func TestWidenSameEpoch(t *testing.T) {
	now64 := uint64(0x0000000100000000) + 5000
	ts64 := Widen(now64, Timestamp(4000))
	want := uint64(0x0000000100000000) + 4000
	if ts64 != want {
		t.Fatalf("Widen = %#x, want %#x", ts64, want)
	}
}

// Invariant 6 from spec.md §8: for any now64 and ts32 <= now64 & 0xFFFFFFFF, now64-ts64 <
// 2^32.
func TestWidenInvariant(t *testing.T) {
	cases := []struct {
		now64 uint64
		ts32  uint32
	}{
		{now64: 10_000_000_000, ts32: 9_999_000},
		{now64: 1 << 33, ts32: 0},
		{now64: (1 << 32) + 100, ts32: 50},
	}
	for _, c := range cases {
		ts64 := Widen(c.now64, Timestamp(c.ts32))
		if c.now64-ts64 >= (1 << 32) {
			t.Fatalf("now64=%d ts32=%d: now64-ts64=%d, want < 2^32", c.now64, c.ts32, c.now64-ts64)
		}
	}
}

// Wrap edge case: capture happened just before a 32-bit wrap, now64 read just after.
func TestWidenWrapEdge(t *testing.T) {
	now64 := uint64(0x0000000200000005) // high half just incremented
	ts32 := Timestamp(0xFFFFFFF0)        // captured just before the wrap
	ts64 := Widen(now64, ts32)

	want := uint64(0x00000001FFFFFFF0)
	if ts64 != want {
		t.Fatalf("Widen = %#x, want %#x", ts64, want)
	}
	if now64-ts64 >= (1 << 32) {
		t.Fatalf("now64-ts64 = %d, want < 2^32", now64-ts64)
	}
}

func TestWidenExactBoundary(t *testing.T) {
	now64 := uint64(0x0000000100000000)
	ts64 := Widen(now64, Timestamp(0))
	if ts64 != now64 {
		t.Fatalf("Widen = %#x, want %#x", ts64, now64)
	}
}
