// Package menu holds the fixed list of dishes customers order from.
package menu

import "github.com/huynhanx03/chillibowl/pkg/runtime"

// Item is a dish on the menu.
type Item string

const (
	BensChilli            Item = "BensChilli"
	BensHalfSmoke         Item = "BensHalfSmoke"
	BensHotDog            Item = "BensHotDog"
	BensChilliCheeseFries Item = "BensChilliCheeseFries"
	BensShake             Item = "BensShake"
	BensHotCakes          Item = "BensHotCakes"
	BensCake              Item = "BensCake"
	BensHamburger         Item = "BensHamburger"
	BensVeggieBurger      Item = "BensVeggieBurger"
	BensOnionRings        Item = "BensOnionRings"
)

var items = [...]Item{
	BensChilli,
	BensHalfSmoke,
	BensHotDog,
	BensChilliCheeseFries,
	BensShake,
	BensHotCakes,
	BensCake,
	BensHamburger,
	BensVeggieBurger,
	BensOnionRings,
}

func (i Item) String() string { return string(i) }

// Items returns a copy of the menu in table order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items[:])
	return out
}

// Len returns the number of dishes.
func Len() int { return len(items) }

// At returns the i-th dish.
func At(i int) (Item, bool) {
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i], true
}

// Pick returns a uniformly random dish.
func Pick() Item {
	return PickWith(runtime.Uint32n)
}

// PickWith selects a dish with rand, which must return a value in [0, n).
// Out of range results wrap around.
func PickWith(rand func(n uint32) uint32) Item {
	n := uint32(len(items))
	return items[rand(n)%n]
}
