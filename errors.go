// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arenakv

import (
	"errors"

	"github.com/bpowers/arenakv/internal/region"
)

var (
	// ErrAllocation is returned by Open when the backing memory can't be obtained.
	ErrAllocation = region.ErrAllocation
	// ErrCapacityExceeded is returned by Put when the entry doesn't fit in
	// the remaining space.  The table is left unchanged.
	ErrCapacityExceeded = region.ErrCapacityExceeded
	// ErrClosed is returned by a second Close.  Any other use of a closed
	// table panics with it.
	ErrClosed = region.ErrClosed

	// ErrInvalidConfig is returned by Open when the Config can't be laid
	// out: Bloom bits that aren't a power of two, no buckets, or a
	// capacity too small for the Bloom and bucket zones.
	ErrInvalidConfig = errors.New("invalid table config")
	// ErrEntryTooLarge is returned by Put when the key or value length
	// doesn't fit the 32-bit entry header.
	ErrEntryTooLarge = errors.New("key or value too large")
)
