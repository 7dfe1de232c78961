// Package bitset implements a fixed-capacity bit vector keyed by small
// non-negative integers. In this toolkit a BitSet records the set of leaf
// ids below a node, so that the splits of two trees can be collected and
// compared by value.
package bitset

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

const wordSize = 64

// A BitSet is a fixed-size set of bits. The size is chosen at construction
// and never changes; positions at or beyond the size are out of range and
// panic, since indexing past the declared capacity is a programming error.
type BitSet struct {
	size  int
	words []uint64
}

// New returns a BitSet holding `size` bits, all zero. It panics if size is
// not positive.
func New(size int) *BitSet {
	if size <= 0 {
		panic(fmt.Sprintf("bitset: size must be positive, got %d", size))
	}
	return &BitSet{
		size:  size,
		words: make([]uint64, (size+wordSize-1)/wordSize),
	}
}

// Size returns the number of bits held by the set.
func (b *BitSet) Size() int {
	return b.size
}

func (b *BitSet) check(pos int) {
	if pos < 0 || pos >= b.size {
		panic(fmt.Sprintf("bitset: position out of range (%d >= %d)", pos, b.size))
	}
}

// Set turns on the bit at pos.
func (b *BitSet) Set(pos int) {
	b.check(pos)
	b.words[pos>>6] |= 1 << (pos & 63)
}

// Clear turns off the bit at pos.
func (b *BitSet) Clear(pos int) {
	b.check(pos)
	b.words[pos>>6] &^= 1 << (pos & 63)
}

// Flip inverts the bit at pos.
func (b *BitSet) Flip(pos int) {
	b.check(pos)
	b.words[pos>>6] ^= 1 << (pos & 63)
}

// FlipAll inverts every bit in the set.
func (b *BitSet) FlipAll() {
	for i := range b.words {
		b.words[i] = ^b.words[i]
	}
	b.trim()
}

// Test reports whether the bit at pos is set.
func (b *BitSet) Test(pos int) bool {
	b.check(pos)
	return b.words[pos>>6]&(1<<(pos&63)) != 0
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// trim zeroes the unused high bits of the last word so that values built
// through FlipAll or Not compare equal to values built bit by bit.
func (b *BitSet) trim() {
	if rem := b.size & 63; rem != 0 {
		b.words[len(b.words)-1] &= (1 << rem) - 1
	}
}

// Clone returns an independent copy.
func (b *BitSet) Clone() *BitSet {
	c := New(b.size)
	copy(c.words, b.words)
	return c
}

// InPlaceUnion ors the bits of other into b. The two sets must be the same
// size.
func (b *BitSet) InPlaceUnion(other *BitSet) {
	b.sameSize(other)
	for i, w := range other.words {
		b.words[i] |= w
	}
}

// Union returns a new set holding the bits present in either operand.
func (b *BitSet) Union(other *BitSet) *BitSet {
	c := b.Clone()
	c.InPlaceUnion(other)
	return c
}

// Intersection returns a new set holding the bits present in both operands.
func (b *BitSet) Intersection(other *BitSet) *BitSet {
	b.sameSize(other)
	c := New(b.size)
	for i := range c.words {
		c.words[i] = b.words[i] & other.words[i]
	}
	return c
}

// SymmetricDifference returns a new set holding the bits present in exactly
// one operand.
func (b *BitSet) SymmetricDifference(other *BitSet) *BitSet {
	b.sameSize(other)
	c := New(b.size)
	for i := range c.words {
		c.words[i] = b.words[i] ^ other.words[i]
	}
	return c
}

// Not returns the complement of b.
func (b *BitSet) Not() *BitSet {
	c := b.Clone()
	c.FlipAll()
	return c
}

func (b *BitSet) sameSize(other *BitSet) {
	if b.size != other.size {
		panic(fmt.Sprintf("bitset: size mismatch (%d != %d)", b.size, other.size))
	}
}

// Equal reports whether both sets have the same size and the same bits.
func (b *BitSet) Equal(other *BitSet) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, w := range b.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Key returns a compact fingerprint over (size, bits) suitable for use as a
// Go map key. Two sets have the same key iff Equal reports true.
func (b *BitSet) Key() string {
	buf := make([]byte, 8*(1+len(b.words)))
	binary.LittleEndian.PutUint64(buf, uint64(b.size))
	for i, w := range b.words {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], w)
	}
	return string(buf)
}

// String renders the bits in position order, lowest first, as '0'/'1'
// characters.
func (b *BitSet) String() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for i := 0; i < b.size; i++ {
		if b.words[i>>6]&(1<<(i&63)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
