// Package ints implements a bit set of non-negative integers.
package ints

import (
	"math/bits"
)

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set stores non-negative integers, negative items are ignored.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	result := &Set{}
	return result.Add(items...)
}

func chunkIndex(item int) int {
	return item >> IntSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) allocate(item int) {
	index := chunkIndex(item)
	if index < len(s.chunks) {
		return
	}

	if index < cap(s.chunks) {
		s.chunks = s.chunks[:index+1]
		return
	}

	chunks := make([]uint, index+1, (index+1)<<1)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		s.allocate(item)
		s.chunks[chunkIndex(item)] |= bitMask(item)
	}
	return s
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.chunks) > len(s.chunks) {
		s.allocate((len(t.chunks) << IntSizeShift) - 1)
	}
	for i, chunk := range t.chunks {
		s.chunks[i] |= chunk
	}
	return s
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// Max returns the largest item or -1 for empty set.
func (s *Set) Max() int {
	for i := len(s.chunks) - 1; i >= 0; i-- {
		if s.chunks[i] != 0 {
			return (i << IntSizeShift) + bits.Len(s.chunks[i]) - 1
		}
	}
	return -1
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		base := i << IntSizeShift
		for chunk != 0 {
			result = append(result, base+bits.TrailingZeros(chunk))
			chunk &= chunk - 1
		}
	}
	return result
}
