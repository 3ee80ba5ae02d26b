package utils

import (
	"iter"
	"math/bits"
)

const wordSize = 64

// BitSet is a fixed-size set of small non-negative integers. The renderer
// uses it to mark which viewport rows changed between two frames.
type BitSet struct {
	words []uint64
	size  int
}

func NewBitSet(size int) *BitSet {
	Assert(size >= 0, "negative bit set size")
	return &BitSet{
		words: make([]uint64, (size+wordSize-1)/wordSize),
		size:  size,
	}
}

func (s *BitSet) Len() int {
	return s.size
}

// addr returns the word holding bit idx and the bit's offset in it.
func (s *BitSet) addr(idx int) (int, uint) {
	Assertf(idx >= 0 && idx < s.size, "bit %d out of range [0, %d)", idx, s.size)
	return idx / wordSize, uint(idx % wordSize)
}

func (s *BitSet) Set(idx int) {
	w, off := s.addr(idx)
	s.words[w] |= 1 << off
}

func (s *BitSet) IsSet(idx int) bool {
	w, off := s.addr(idx)
	return s.words[w]&(1<<off) != 0
}

// SetRange sets every bit in [start, end).
func (s *BitSet) SetRange(start, end int) {
	Assert(0 <= start && start <= end && end <= s.size, "range out of bounds")
	for i := start; i < end; i++ {
		s.Set(i)
	}
}

// Count returns the number of set bits.
func (s *BitSet) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

func (s *BitSet) Clear() {
	clear(s.words)
}

// All yields the set bits in ascending order.
func (s *BitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for wi, w := range s.words {
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(wi*wordSize + tz) {
					return
				}
				w &^= 1 << uint(tz)
			}
		}
	}
}
