// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bloom implements a k=3 Bloom filter stored in a caller-owned
// byte region.  The filter only ever gains bits; there is no removal.
package bloom

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/bpowers/arenakv/internal/bitset"
	"github.com/bpowers/arenakv/internal/khash"
)

// K is the number of hash functions (and bits) per key.
const K = len(khash.Sums{})

var ErrBadSize = errors.New("bloom: bit count must be a power of two")

type Filter struct {
	bits *bitset.Bitset
	mask uint64
}

// New returns a filter over region, which must be zeroed by the caller
// for a fresh filter and whose length in bits must be a power of two.
func New(region []byte) (*Filter, error) {
	nBits := uint64(len(region)) * 8
	if nBits == 0 || bits.OnesCount64(nBits) != 1 {
		return nil, fmt.Errorf("%w: got %d bits", ErrBadSize, nBits)
	}
	return &Filter{
		bits: bitset.View(region),
		mask: nBits - 1,
	}, nil
}

// Add records key in the filter.
func (f *Filter) Add(key []byte) {
	f.AddSums(khash.Sum(key))
}

// AddSums records a key by its precomputed hashes.
func (f *Filter) AddSums(sums khash.Sums) {
	for _, h := range sums {
		f.bits.Set(int64(h & f.mask))
	}
}

// MaybeContains returns false if key was definitely never added.  A true
// result is only a hint.
func (f *Filter) MaybeContains(key []byte) bool {
	return f.MaybeContainsSums(khash.Sum(key))
}

func (f *Filter) MaybeContainsSums(sums khash.Sums) bool {
	for _, h := range sums {
		if !f.bits.IsSet(int64(h & f.mask)) {
			return false
		}
	}
	return true
}

// Bits is the size of the filter in bits.
func (f *Filter) Bits() uint64 {
	return f.mask + 1
}

// BitsSet counts the bits currently set.  It scans the whole bitmap.
func (f *Filter) BitsSet() int64 {
	return f.bits.Count()
}

// FillRatio is the fraction of bits set.
func (f *Filter) FillRatio() float64 {
	return float64(f.BitsSet()) / float64(f.Bits())
}

// EstimatedFalsePositiveRate is (1 - e^(-kn/m))^k for n inserted keys.
func (f *Filter) EstimatedFalsePositiveRate(n int64) float64 {
	if n <= 0 {
		return 0
	}
	k := float64(K)
	return math.Pow(1-math.Exp(-k*float64(n)/float64(f.Bits())), k)
}
