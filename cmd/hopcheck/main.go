// Command hopcheck verifies the invariants package hop's channel table depends on: no
// channel appears more than once per cycle, the selector returns to state 0 after L slots,
// and no two consecutive slots (including the wrap from the last slot back to the first)
// land on adjacent channels.
package main

import (
	"log"

	"github.com/korken89/crkbd-shockburst/hop"
)

func panicIf(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	h := hop.New()
	l := h.Len()
	log.Printf("checking hop.Sequence, L=%d", l)

	seen := make(map[uint8]int, l)
	for i := 0; i < l; i++ {
		ch := h.CurrentChannel()
		if prev, ok := seen[ch]; ok {
			log.Fatalf("channel %d used twice: slots %d and %d", ch, prev, i)
		}
		seen[ch] = i
		h.NextChannel()
	}
	if !h.IsInitialState() {
		log.Fatalf("sequence did not return to state 0 after %d slots", l)
	}
	log.Printf("  full cycle: OK, %d distinct channels", len(seen))

	adjacent := 0
	for i := 0; i < l; i++ {
		a, b := hop.Sequence[i], hop.Sequence[(i+1)%l]
		diff := int(a) - int(b)
		if diff == 1 || diff == -1 {
			log.Printf("  slot %d -> %d: channels %d, %d are adjacent", i, (i+1)%l, a, b)
			adjacent++
		}
	}
	if adjacent > 0 {
		log.Fatalf("anti-adjacency: FAILED, %d adjacent pairs", adjacent)
	}
	log.Printf("  anti-adjacency: OK")
}
