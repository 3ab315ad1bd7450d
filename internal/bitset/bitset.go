// Copyright 2026 The arenakv Authors and Caleb Spare. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"math/bits"
)

// Bitset is a bitmap view over a byte slice it does not own, numbered
// LSB-first within each byte.  Bits can be set but never cleared: the
// only way to reset a Bitset is to release the memory underneath it.
type Bitset struct {
	bits   []byte
	length int64
}

func getOffsets(off int64) (byteOff int64, bitOff uint8) {
	byteOff = off >> 3
	bitOff = uint8(off & 7)
	return
}

// Set sets the bit at position `off` to 1.  Out of range offsets are ignored.
func (b *Bitset) Set(off int64) {
	if off < 0 || off >= b.length {
		return
	}
	byteOff, bitOff := getOffsets(off)
	b.bits[byteOff] |= 1 << bitOff
}

// IsSet returns true if the bit at position `off` is 1.
func (b *Bitset) IsSet(off int64) bool {
	if off < 0 || off >= b.length {
		return false
	}
	byteOff, bitOff := getOffsets(off)
	return b.bits[byteOff]&(1<<bitOff) != 0
}

// Len is the number of addressable bits.
func (b *Bitset) Len() int64 {
	return b.length
}

// Count returns the number of bits that are set.
func (b *Bitset) Count() int64 {
	var n int
	for _, c := range b.bits {
		n += bits.OnesCount8(c)
	}
	return int64(n)
}

// View returns a bitset backed by buf; writes through the bitset are
// visible in buf and vice versa.
func View(buf []byte) *Bitset {
	return &Bitset{
		bits:   buf,
		length: int64(len(buf)) * 8,
	}
}

// New returns a new in-memory bitset of at least `length` bits.
func New(length int64) *Bitset {
	b := View(make([]byte, (length+7)/8))
	b.length = length
	return b
}
