// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arenakv

import (
	"fmt"

	"github.com/bpowers/arenakv/internal/buckets"
)

// Stats is a point-in-time summary of a table's memory and chain shape.
type Stats struct {
	Entries     int64
	UsedBytes   int64
	FreeBytes   int64
	RegionBytes int64

	BloomBits    uint64
	BloomBitsSet int64

	BucketCount  uint64
	BucketsUsed  uint64
	LongestChain int64

	// EstimatedFalsePositiveRate is the textbook Bloom estimate for
	// Entries keys, treating duplicates as distinct.
	EstimatedFalsePositiveRate float64
}

// Stats walks the bucket table and Bloom bitmap; its cost is linear in
// the size of the table.
func (t *Table) Stats() Stats {
	t.mustBeOpen()
	s := Stats{
		Entries:                    t.count,
		UsedBytes:                  t.region.Used(),
		FreeBytes:                  t.region.Free(),
		RegionBytes:                t.region.Layout().Size,
		BloomBits:                  t.filter.Bits(),
		BloomBitsSet:               t.filter.BitsSet(),
		BucketCount:                t.buckets.Len(),
		BucketsUsed:                t.buckets.Used(),
		EstimatedFalsePositiveRate: t.filter.EstimatedFalsePositiveRate(t.count),
	}
	for b := uint64(0); b < t.buckets.Len(); b++ {
		if n := t.chainLen(b); n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}

func (t *Table) chainLen(b uint64) int64 {
	off, err := t.buckets.Head(b)
	if err != nil {
		panic(fmt.Errorf("invariant broken: %w", err))
	}
	var n int64
	for off != buckets.Empty {
		n++
		off = t.chainHeader(b, off).Next
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("entries=%d used=%d free=%d bloom=%d/%d buckets=%d/%d longest-chain=%d est-fp=%.4f",
		s.Entries, s.UsedBytes, s.FreeBytes, s.BloomBitsSet, s.BloomBits,
		s.BucketsUsed, s.BucketCount, s.LongestChain, s.EstimatedFalsePositiveRate)
}
