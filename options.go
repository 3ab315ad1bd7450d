// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arenakv

import (
	"log/slog"

	"github.com/bpowers/arenakv/internal/region"
)

// Backing selects where a table's memory comes from.
type Backing = region.Backing

const (
	// BackingAuto maps anonymous memory, falling back to the Go heap if
	// the mapping fails.
	BackingAuto = region.BackingAuto
	// BackingMmap maps anonymous memory; Open fails with ErrAllocation
	// if it can't.
	BackingMmap = region.BackingMmap
	// BackingHeap allocates from the Go heap.
	BackingHeap = region.BackingHeap
)

// ParseBacking parses "auto", "mmap" or "heap".
func ParseBacking(s string) (Backing, error) {
	return region.ParseBacking(s)
}

// Config sizes a table.  None of it can change after Open.
type Config struct {
	// CapacityBytes is the total size of the region, including the Bloom
	// bitmap and bucket table.
	CapacityBytes int64
	// BloomBits is the size of the Bloom filter; a power of two >= 64.
	BloomBits uint64
	// BucketCount is the number of hash chains.  Powers of two are
	// cheaper to index but not required.
	BucketCount uint64

	Backing Backing
	// Lock mlocks a mapped region.  Best effort.
	Lock bool
}

// DefaultConfig returns a 64 MiB table with a 1 Mbit Bloom filter and
// 8192 buckets.
func DefaultConfig() Config {
	return Config{
		CapacityBytes: 64 * 1024 * 1024,
		BloomBits:     1 << 20,
		BucketCount:   8 * 1024,
	}
}

// Option configures a Table.
type Option func(*tableOptions)

type tableOptions struct {
	logger *slog.Logger
}

// WithLogger sets an optional logger for the table to report allocation
// fallbacks and lifecycle events to.  If not provided, no logging output
// will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *tableOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}
