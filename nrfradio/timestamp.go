package nrfradio

// Widen reconstructs a full 64-bit tick from a 32-bit address-capture timestamp and the
// 64-bit monotonic reading taken at wake time (spec.md §4.7).
//
// It composes the high 32 bits of now64 with ts32's low 32 bits, then corrects for the
// rare case where capture happened just before a 32-bit wrap and now64 was read just
// after it: if ts32 is numerically greater than now64's low 32 bits, the composed value
// would be in the future relative to now64, so the high half is decremented by one. The
// original firmware does not handle this edge; this port does (spec.md §9).
func Widen(now64 uint64, ts32 Timestamp) uint64 {
	high := now64 &^ 0xFFFFFFFF
	ts64 := high | uint64(ts32)
	if uint64(ts32) > (now64 & 0xFFFFFFFF) {
		ts64 -= 1 << 32
	}
	return ts64
}
