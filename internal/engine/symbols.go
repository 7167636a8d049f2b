package engine

import "math/rand"

// Symbol is one reel face. The zero value marks a position that has never
// been spun.
type Symbol string

// Symbols is the fixed set a spin draws from, uniformly.
var Symbols = []Symbol{
	"cherry",
	"lemon",
	"grape",
	"bell",
	"star",
	"seven",
}

// drawSymbol is a var so tests can stub the randomness source.
var drawSymbol = func() Symbol {
	return Symbols[rand.Intn(len(Symbols))]
}

// spinSlots redraws every unlocked position and preserves locked ones.
// Pure apart from the draw itself; the caller owns the spin counter.
func spinSlots(slots [SlotCount]Symbol, locks [SlotCount]bool) [SlotCount]Symbol {
	for i := range slots {
		if !locks[i] {
			slots[i] = drawSymbol()
		}
	}
	return slots
}
