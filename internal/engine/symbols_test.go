package engine

import "testing"

func TestSpinSlots_OnlyUnlockedPositionsRedrawn(t *testing.T) {
	stubDraw(t, "bell")

	slots := [SlotCount]Symbol{"cherry", "lemon", "grape", "star", "seven"}
	locks := [SlotCount]bool{true, false, true, false, true}

	got := spinSlots(slots, locks)
	want := [SlotCount]Symbol{"cherry", "bell", "grape", "bell", "seven"}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if slots[1] != "lemon" {
		t.Fatalf("input slots mutated: %v", slots)
	}
}

func TestDrawSymbol_RoughlyUniform(t *testing.T) {
	const draws = 6000
	counts := make(map[Symbol]int, len(Symbols))
	for i := 0; i < draws; i++ {
		counts[drawSymbol()]++
	}

	// Expected ~1000 per symbol; generous bounds keep the test stable.
	for _, sym := range Symbols {
		n := counts[sym]
		if n < 700 || n > 1300 {
			t.Fatalf("symbol %q drawn %d times out of %d; distribution looks skewed: %v", sym, n, draws, counts)
		}
	}
}
