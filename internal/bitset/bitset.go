// Package bitset provides the fixed-capacity bit array primitive used by
// store.AttributeStore to track empty cells.
//
// It wraps github.com/bits-and-blooms/bitset, built on a dense []uint64
// word array. This package adds the parts the raw library doesn't have: an
// explicit tracked capacity (so "past capacity" reads as "not found"
// instead of the library's default unbounded-growth-on-Set),
// word-multiple-of-64 rounding on Resize, and FirstSetFrom/FirstClearFrom
// returning the capacity (not -1) when nothing matches.
package bitset

import bbs "github.com/bits-and-blooms/bitset"

const wordBits = 64

// Bitset is a fixed-capacity bit array with O(1) set/clear/test and
// word-accelerated find-next-set/find-next-clear.
type Bitset struct {
	bits     *bbs.BitSet
	capacity int
}

// New creates a Bitset whose capacity is n rounded up to a multiple of 64.
func New(n int) *Bitset {
	b := &Bitset{}
	b.Resize(n)
	return b
}

// Resize rounds n up to the next multiple of 64 and replaces the contents
// with that many zero bits: every previously set bit is discarded, including
// those below the new capacity. Use Grow to extend while keeping bits.
func (b *Bitset) Resize(n int) {
	if n < 0 {
		n = 0
	}
	rounded := roundUpToWord(n)
	b.bits = bbs.New(uint(rounded))
	b.capacity = rounded
}

// Grow extends the bitset to at least n bits (rounded up to a word
// multiple), preserving existing bits. It never shrinks.
func (b *Bitset) Grow(n int) {
	rounded := roundUpToWord(n)
	if rounded <= b.capacity {
		return
	}
	// bits-and-blooms/bitset grows lazily on Set, but we need the
	// capacity tracked explicitly for FirstSetFrom/FirstClearFrom bounds
	// checks, so force the underlying storage to the new size now.
	b.bits.Set(uint(rounded - 1))
	b.bits.Clear(uint(rounded - 1))
	b.capacity = rounded
}

// Cap returns the current capacity in bits.
func (b *Bitset) Cap() int {
	return b.capacity
}

// Set sets the bit at index i. i must be < Cap().
func (b *Bitset) Set(i int) {
	b.bits.Set(uint(i))
}

// Clear clears the bit at index i. i must be < Cap().
func (b *Bitset) Clear(i int) {
	b.bits.Clear(uint(i))
}

// Test reports whether the bit at index i is set.
func (b *Bitset) Test(i int) bool {
	if i < 0 || i >= b.capacity {
		return false
	}
	return b.bits.Test(uint(i))
}

// SetAll sets every bit in [0, Cap()).
func (b *Bitset) SetAll() {
	for i := 0; i < b.capacity; i += wordBits {
		hi := min(i+wordBits, b.capacity)
		for j := i; j < hi; j++ {
			b.bits.Set(uint(j))
		}
	}
}

// ClearAll clears every bit in [0, Cap()).
func (b *Bitset) ClearAll() {
	b.bits.ClearAll()
}

// CountSet returns the number of set bits.
func (b *Bitset) CountSet() int {
	return int(b.bits.Count())
}

// FirstSetFrom returns the index of the first set bit at or after i, or
// Cap() if none exists.
func (b *Bitset) FirstSetFrom(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= b.capacity {
		return b.capacity
	}
	idx, ok := b.bits.NextSet(uint(i))
	if !ok || int(idx) >= b.capacity {
		return b.capacity
	}
	return int(idx)
}

// FirstClearFrom returns the index of the first clear bit at or after i, or
// Cap() if none exists within capacity.
func (b *Bitset) FirstClearFrom(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= b.capacity {
		return b.capacity
	}
	idx, ok := b.bits.NextClear(uint(i))
	if !ok || int(idx) >= b.capacity {
		return b.capacity
	}
	return int(idx)
}

func roundUpToWord(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + wordBits - 1) / wordBits * wordBits
}
