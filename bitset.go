package foreman

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/TheBitDrifter/bark"
)

const wordBits = 64

// Bitset is a word-packed dynamic bit vector. The zero value is an empty set. Set grows the
// backing storage as needed; Test past the end reports false. Bitsets back entity component
// masks, family predicates, and family membership indexes.
type Bitset struct {
	words []uint64
}

// Set marks bit i, growing the backing storage as needed.
func (b *Bitset) Set(i int) {
	if i < 0 {
		panic(bark.AddTrace(fmt.Errorf("bitset index out of range: %d", i)))
	}
	w := i / wordBits
	if w >= len(b.words) {
		grown := make([]uint64, w+1)
		copy(grown, b.words)
		b.words = grown
	}
	b.words[w] |= 1 << (i % wordBits)
}

// Clear unmarks bit i. Clearing past the end is a no-op.
func (b *Bitset) Clear(i int) {
	if i < 0 {
		panic(bark.AddTrace(fmt.Errorf("bitset index out of range: %d", i)))
	}
	w := i / wordBits
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= 1 << (i % wordBits)
}

// Test reports whether bit i is set. Indexes past the end report false.
func (b *Bitset) Test(i int) bool {
	if i < 0 {
		panic(bark.AddTrace(fmt.Errorf("bitset index out of range: %d", i)))
	}
	w := i / wordBits
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(i%wordBits)) != 0
}

// Contains reports whether every bit set in other is also set in b.
func (b *Bitset) Contains(other *Bitset) bool {
	for i, w := range other.words {
		if i >= len(b.words) {
			if w != 0 {
				return false
			}
			continue
		}
		if b.words[i]&w != w {
			return false
		}
	}
	return true
}

// Intersects reports whether some bit is set in both b and other.
func (b *Bitset) Intersects(other *Bitset) bool {
	n := min(len(b.words), len(other.words))
	for i := 0; i < n; i++ {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// Length returns one past the highest set bit, or 0 for an empty set.
func (b *Bitset) Length() int {
	for i := len(b.words) - 1; i >= 0; i-- {
		if b.words[i] != 0 {
			return i*wordBits + bits.Len64(b.words[i])
		}
	}
	return 0
}

// IsEmpty reports whether no bits are set.
func (b *Bitset) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// ForEachSet visits every set bit from highest to lowest. The order is stable and part of the
// contract: entity removal walks component bits in descending id order.
func (b *Bitset) ForEachSet(f func(i int)) {
	for wi := len(b.words) - 1; wi >= 0; wi-- {
		w := b.words[wi]
		for w != 0 {
			bit := bits.Len64(w) - 1
			f(wi*wordBits + bit)
			w &^= 1 << bit
		}
	}
}

// Reset clears every bit but keeps the backing storage.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Clone returns an independent copy.
func (b *Bitset) Clone() *Bitset {
	c := &Bitset{}
	if len(b.words) > 0 {
		c.words = make([]uint64, len(b.words))
		copy(c.words, b.words)
	}
	return c
}

// Equal compares logical content; trailing zero words are ignored.
func (b *Bitset) Equal(other *Bitset) bool {
	long, short := b.words, other.words
	if len(short) > len(long) {
		long, short = short, long
	}
	for i := range short {
		if long[i] != short[i] {
			return false
		}
	}
	for _, w := range long[len(short):] {
		if w != 0 {
			return false
		}
	}
	return true
}

// String renders the set bits in ascending order, e.g. "{0, 3, 17}".
func (b *Bitset) String() string {
	var set []string
	for i := 0; i < b.Length(); i++ {
		if b.Test(i) {
			set = append(set, fmt.Sprintf("%d", i))
		}
	}
	return "{" + strings.Join(set, ", ") + "}"
}
