// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package region owns the single block of memory behind a table and the
// write cursor that carves entries out of its data zone.
//
// A region looks like:
//
//	┌───────────────────┐ 0
//	│ bloom bitmap      │
//	├───────────────────┤ BucketOff
//	│ bucket heads      │
//	├───────────────────┤ DataOff
//	│ entries           │
//	│ ...               │
//	├───────────────────┤ cursor
//	│ unused            │
//	│                   │
//	└───────────────────┘ Size
//
// The bloom and bucket zones are zeroed at open; the data zone is only
// ever read below the cursor, so it is not.
package region

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bpowers/arenakv/internal/zero"
)

// Alignment is the granularity of Reserve.
const Alignment = 8

var (
	ErrAllocation       = errors.New("region could not be allocated")
	ErrCapacityExceeded = errors.New("region capacity exceeded")
	ErrClosed           = errors.New("region is closed")
	ErrOutOfBounds      = errors.New("offset outside of written data")
)

// Backing selects where a region's memory comes from.
type Backing int

const (
	// BackingAuto maps anonymous memory and falls back to the Go heap if
	// the mapping fails.
	BackingAuto Backing = iota
	// BackingMmap maps anonymous memory and fails if it can't.
	BackingMmap
	// BackingHeap allocates from the Go heap.
	BackingHeap
)

func (b Backing) String() string {
	switch b {
	case BackingAuto:
		return "auto"
	case BackingMmap:
		return "mmap"
	case BackingHeap:
		return "heap"
	default:
		return fmt.Sprintf("Backing(%d)", int(b))
	}
}

// ParseBacking is the inverse of Backing.String.
func ParseBacking(s string) (Backing, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return BackingAuto, nil
	case "mmap":
		return BackingMmap, nil
	case "heap":
		return BackingHeap, nil
	}
	return 0, fmt.Errorf("unknown backing %q (want auto, mmap or heap)", s)
}

type Options struct {
	Backing Backing
	// Lock asks the OS to keep a mapped region resident.  Failure is
	// logged and ignored.
	Lock   bool
	Logger *slog.Logger
}

// Region is a fixed-size block of memory.  It is not safe for concurrent use.
type Region struct {
	layout Layout
	mem    []byte
	mapped bool
	cursor int64
	closed bool
	logger *slog.Logger
}

// Align rounds n up to the next multiple of Alignment.
func Align(n int64) int64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

var errTooLargeForHeap = errors.New("too large for the heap")

// heapAlloc returns size zeroed bytes from the Go heap.  The runtime
// aborts the process when it can't satisfy an allocation, so sizes the
// machine can't hold are refused up front, and the panic make raises for
// lengths past the address space is turned into an error.
func heapAlloc(size int64) (b []byte, err error) {
	if total, ok := physicalMemory(); ok && uint64(size) > total {
		return nil, fmt.Errorf("%d bytes: %w (%d bytes of RAM)", size, errTooLargeForHeap, total)
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%d bytes: %w", size, errTooLargeForHeap)
	}
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("make(%d): %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

// Open allocates a region for layout.
func Open(layout Layout, opts Options) (*Region, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if layout.Size < layout.DataOff || layout.DataOff <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLayout, layout)
	}

	r := &Region{
		layout: layout,
		cursor: layout.DataOff,
		logger: logger,
	}

	switch opts.Backing {
	case BackingAuto, BackingMmap:
		m, mmapErr := mapAnon(layout.Size)
		if mmapErr == nil {
			r.mem = m
			r.mapped = true
			break
		}
		if opts.Backing == BackingMmap {
			return nil, fmt.Errorf("%w: mmap(%d): %w", ErrAllocation, layout.Size, mmapErr)
		}
		logger.Warn("mmap failed, falling back to heap", "size", layout.Size, "err", mmapErr)
		m, heapErr := heapAlloc(layout.Size)
		if heapErr != nil {
			return nil, fmt.Errorf("%w: mmap(%d): %w; heap: %w", ErrAllocation, layout.Size, mmapErr, heapErr)
		}
		r.mem = m
	case BackingHeap:
		m, err := heapAlloc(layout.Size)
		if err != nil {
			return nil, fmt.Errorf("%w: heap(%d): %w", ErrAllocation, layout.Size, err)
		}
		r.mem = m
	default:
		return nil, fmt.Errorf("%w: unknown backing %s", ErrAllocation, opts.Backing)
	}

	if r.mapped {
		if err := adviseRandom(r.mem); err != nil {
			logger.Warn("madvise failed, continuing anyway", "err", err)
		}
		if opts.Lock {
			logger.Debug("mlocking region into memory", "size", layout.Size)
			if err := lock(r.mem); err != nil {
				logger.Warn("failed to mlock region, continuing anyway", "err", err)
			}
		}
	}

	zero.Bytes(r.mem[:layout.DataOff])

	logger.Debug("region opened", "layout", layout.String(), "mapped", r.mapped)
	return r, nil
}

func (r *Region) mustBeOpen() {
	if r.closed {
		panic(ErrClosed)
	}
}

// Close releases the region's memory.  It is an error to close twice.
func (r *Region) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	mem := r.mem
	r.mem = nil
	if r.mapped {
		if err := unmap(mem); err != nil {
			return fmt.Errorf("munmap: %w", err)
		}
	}
	r.logger.Debug("region closed", "used", r.cursor-r.layout.DataOff)
	return nil
}

// Layout returns the zone layout the region was opened with.
func (r *Region) Layout() Layout {
	return r.layout
}

// Mapped reports whether the region lives in an mmap'd mapping rather
// than on the Go heap.
func (r *Region) Mapped() bool {
	return r.mapped
}

// BloomZone is the Bloom filter bitmap.
func (r *Region) BloomZone() []byte {
	r.mustBeOpen()
	return r.mem[r.layout.BloomOff:r.layout.BucketOff:r.layout.BucketOff]
}

// BucketZone is the bucket head-pointer table.
func (r *Region) BucketZone() []byte {
	r.mustBeOpen()
	end := r.layout.BucketOff + r.layout.BucketLen()
	return r.mem[r.layout.BucketOff:end:end]
}

// Reserve advances the cursor by size, rounded up to Alignment, and
// returns the offset of the reserved space.  On ErrCapacityExceeded the
// cursor does not move.
func (r *Region) Reserve(size int64) (uint64, error) {
	r.mustBeOpen()
	if size < 0 {
		return 0, fmt.Errorf("region.Reserve: negative size %d", size)
	}
	free := r.layout.Size - r.cursor
	if size > free {
		return 0, fmt.Errorf("%w: need %d bytes, %d free", ErrCapacityExceeded, size, free)
	}
	aligned := Align(size)
	if aligned > free {
		return 0, fmt.Errorf("%w: need %d bytes, %d free", ErrCapacityExceeded, aligned, free)
	}
	off := r.cursor
	r.cursor += aligned
	return uint64(off), nil
}

// Slice returns n bytes at off.  Only reserved space in the data zone is
// addressable; anything else is ErrOutOfBounds.
func (r *Region) Slice(off uint64, n int64) ([]byte, error) {
	r.mustBeOpen()
	if off < uint64(r.layout.DataOff) || off > uint64(r.cursor) {
		return nil, fmt.Errorf("%w: offset %d not in [%d, %d)", ErrOutOfBounds, off, r.layout.DataOff, r.cursor)
	}
	start := int64(off)
	if n < 0 || n > r.cursor-start {
		return nil, fmt.Errorf("%w: %d bytes at offset %d beyond cursor %d", ErrOutOfBounds, n, off, r.cursor)
	}
	return r.mem[start : start+n : start+n], nil
}

// Used is the number of bytes reserved in the data zone.
func (r *Region) Used() int64 {
	r.mustBeOpen()
	return r.cursor - r.layout.DataOff
}

// Free is the number of bytes left in the data zone.
func (r *Region) Free() int64 {
	r.mustBeOpen()
	return r.layout.Size - r.cursor
}
