// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package region

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	// MinBloomBits keeps the Bloom zone non-empty and a whole number of
	// 8-byte words, so the bucket and data zones stay aligned.
	MinBloomBits = 64

	slotSize = 8
)

var ErrInvalidLayout = errors.New("invalid region layout")

// Layout records where each zone of a region starts.  It is computed once
// at open time and never changes.
type Layout struct {
	Size        int64
	BloomBits   uint64
	BucketCount uint64

	BloomOff  int64
	BucketOff int64
	DataOff   int64
}

// NewLayout validates capacity parameters and computes zone offsets.
func NewLayout(size int64, bloomBits, bucketCount uint64) (Layout, error) {
	if bloomBits < MinBloomBits || bits.OnesCount64(bloomBits) != 1 {
		return Layout{}, fmt.Errorf("%w: bloom bits %d must be a power of two >= %d", ErrInvalidLayout, bloomBits, MinBloomBits)
	}
	if bloomBits/8 > math.MaxInt64/2 {
		return Layout{}, fmt.Errorf("%w: bloom bits %d too large", ErrInvalidLayout, bloomBits)
	}
	if bucketCount == 0 {
		return Layout{}, fmt.Errorf("%w: bucket count must be positive", ErrInvalidLayout)
	}
	if bucketCount > math.MaxInt64/2/slotSize {
		return Layout{}, fmt.Errorf("%w: bucket count %d too large", ErrInvalidLayout, bucketCount)
	}

	l := Layout{
		Size:        size,
		BloomBits:   bloomBits,
		BucketCount: bucketCount,
		BloomOff:    0,
		BucketOff:   int64(bloomBits / 8),
	}
	l.DataOff = Align(l.BucketOff + int64(bucketCount)*slotSize)

	if size < l.DataOff {
		return Layout{}, fmt.Errorf("%w: size %d smaller than the %d bytes needed for the bloom and bucket zones", ErrInvalidLayout, size, l.DataOff)
	}
	if uint64(size) > uint64(math.MaxInt) {
		return Layout{}, fmt.Errorf("%w: size %d not addressable on this platform", ErrInvalidLayout, size)
	}
	return l, nil
}

// BloomLen is the size of the Bloom zone in bytes.
func (l Layout) BloomLen() int64 {
	return l.BucketOff - l.BloomOff
}

// BucketLen is the size of the bucket zone in bytes.
func (l Layout) BucketLen() int64 {
	return int64(l.BucketCount) * slotSize
}

// DataLen is the capacity of the data zone in bytes.
func (l Layout) DataLen() int64 {
	return l.Size - l.DataOff
}

func (l Layout) String() string {
	return fmt.Sprintf("bloom=[%d,%d) buckets=[%d,%d) data=[%d,%d)",
		l.BloomOff, l.BucketOff, l.BucketOff, l.BucketOff+l.BucketLen(), l.DataOff, l.Size)
}
