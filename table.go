// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arenakv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bpowers/arenakv/internal/bloom"
	"github.com/bpowers/arenakv/internal/buckets"
	"github.com/bpowers/arenakv/internal/entry"
	"github.com/bpowers/arenakv/internal/khash"
	"github.com/bpowers/arenakv/internal/region"
	"github.com/bpowers/arenakv/internal/unsafestring"
)

// Table is a fixed-capacity, append-only hash table living in a single
// memory region.  A Table is not safe for concurrent use; see Locked.
type Table struct {
	cfg     Config
	region  *region.Region
	filter  *bloom.Filter
	buckets *buckets.Table
	count   int64
	logger  *slog.Logger
	closed  bool
}

// Open allocates a region sized by cfg and returns an empty table in it.
func Open(cfg Config, opts ...Option) (*Table, error) {
	var options tableOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}

	layout, err := region.NewLayout(cfg.CapacityBytes, cfg.BloomBits, cfg.BucketCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r, err := region.Open(layout, region.Options{
		Backing: cfg.Backing,
		Lock:    cfg.Lock,
		Logger:  options.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("region.Open: %w", err)
	}

	filter, err := bloom.New(r.BloomZone())
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("bloom.New: %w", err)
	}
	bt, err := buckets.New(r.BucketZone())
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("buckets.New: %w", err)
	}

	options.logger.Debug("table opened",
		"capacity", cfg.CapacityBytes,
		"bloomBits", cfg.BloomBits,
		"buckets", cfg.BucketCount,
		"dataBytes", layout.DataLen(),
		"mapped", r.Mapped())

	return &Table{
		cfg:     cfg,
		region:  r,
		filter:  filter,
		buckets: bt,
		logger:  options.logger,
	}, nil
}

func (t *Table) mustBeOpen() {
	if t.closed {
		panic(ErrClosed)
	}
}

// Close releases the table's memory.  Values previously returned by Get
// are copies and remain valid.
func (t *Table) Close() error {
	if t.closed {
		return ErrClosed
	}
	t.closed = true
	t.logger.Debug("closing table", "entries", t.count, "used", t.region.Used())
	err := t.region.Close()
	t.filter = nil
	t.buckets = nil
	if err != nil {
		return fmt.Errorf("region.Close: %w", err)
	}
	return nil
}

// Put appends a key/value pair.  Putting an existing key shadows the
// earlier value: Get returns the newest one, and the old entry keeps its
// space.  If the region is full Put returns ErrCapacityExceeded and the
// table is unchanged.
func (t *Table) Put(key, value []byte) error {
	t.mustBeOpen()
	if err := entry.Check(key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrEntryTooLarge, err)
	}

	sums := khash.Sum(key)
	b := t.buckets.Index(sums[0])
	head, err := t.buckets.Head(b)
	if err != nil {
		panic(fmt.Errorf("invariant broken: %w", err))
	}

	size := entry.Size(len(key), len(value))
	off, err := t.region.Reserve(size)
	if err != nil {
		if errors.Is(err, region.ErrCapacityExceeded) {
			return fmt.Errorf("%w: %d byte entry, %d bytes free", ErrCapacityExceeded, size, t.region.Free())
		}
		return fmt.Errorf("region.Reserve: %w", err)
	}

	buf, err := t.region.Slice(off, size)
	if err != nil {
		panic(fmt.Errorf("invariant broken: reserved space unaddressable: %w", err))
	}
	if err := entry.Encode(buf, key, value, head); err != nil {
		panic(fmt.Errorf("invariant broken: entry.Encode: %w", err))
	}

	if err := t.buckets.SetHead(b, off); err != nil {
		panic(fmt.Errorf("invariant broken: %w", err))
	}
	t.filter.AddSums(sums)
	t.count++
	return nil
}

// PutString is Put for string keys and values.
func (t *Table) PutString(key, value string) error {
	return t.Put(unsafestring.ToBytes(key), unsafestring.ToBytes(value))
}

// lookup returns the newest value stored for key, aliasing the region.
func (t *Table) lookup(key []byte) ([]byte, bool) {
	t.mustBeOpen()
	sums := khash.Sum(key)
	if !t.filter.MaybeContainsSums(sums) {
		return nil, false
	}

	b := t.buckets.Index(sums[0])
	off, err := t.buckets.Head(b)
	if err != nil {
		panic(fmt.Errorf("invariant broken: %w", err))
	}
	for off != buckets.Empty {
		h := t.chainHeader(b, off)
		if int(h.KeyLen) == len(key) {
			rbuf, err := t.region.Slice(off, h.RecordLen())
			if err != nil {
				panic(fmt.Errorf("invariant broken: bucket %d entry at %d: %w", b, off, err))
			}
			k, v, err := h.Split(rbuf)
			if err != nil {
				panic(fmt.Errorf("invariant broken: bucket %d entry at %d: %w", b, off, err))
			}
			if bytes.Equal(k, key) {
				return v, true
			}
		}
		off = h.Next
	}
	return nil, false
}

// chainHeader decodes the header of the entry at off in bucket b's chain.
// Entries only ever point at older (lower) offsets, so a chain can't
// cycle; anything else means the region is corrupt.
func (t *Table) chainHeader(b, off uint64) entry.Header {
	hbuf, err := t.region.Slice(off, entry.HeaderSize)
	if err != nil {
		panic(fmt.Errorf("invariant broken: bucket %d chain: %w", b, err))
	}
	h, err := entry.DecodeHeader(hbuf)
	if err != nil {
		panic(fmt.Errorf("invariant broken: bucket %d chain: %w", b, err))
	}
	if h.Next != buckets.Empty && h.Next >= off {
		panic(fmt.Errorf("invariant broken: bucket %d entry at %d points forward to %d", b, off, h.Next))
	}
	return h
}

// Get returns a copy of the newest value stored for key.
func (t *Table) Get(key []byte) ([]byte, bool) {
	v, ok := t.lookup(key)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// GetString is Get for string keys.
func (t *Table) GetString(key string) ([]byte, bool) {
	return t.Get(unsafestring.ToBytes(key))
}

// Contains reports whether key has been Put, without copying its value.
func (t *Table) Contains(key []byte) bool {
	_, ok := t.lookup(key)
	return ok
}

// Len is the number of successful Puts, counting shadowed duplicates.
func (t *Table) Len() int64 {
	t.mustBeOpen()
	return t.count
}

// Usage is the number of bytes written to the data zone, including entry
// headers and alignment padding.
func (t *Table) Usage() int64 {
	t.mustBeOpen()
	return t.region.Used()
}

// Config returns the configuration the table was opened with.
func (t *Table) Config() Config {
	return t.cfg
}
