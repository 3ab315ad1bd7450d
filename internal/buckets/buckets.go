// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package buckets is a view of the bucket head-pointer table: an array
// of little-endian uint64 offsets into the data zone.
package buckets

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// SlotSize is the width of one bucket slot in bytes.
const SlotSize = 8

// Empty is the sentinel head offset of a bucket with no entries.  Zeroed
// memory is therefore an empty table.
const Empty uint64 = 0

// Table is a read-write view into a byte array as if it was []uint64.
type Table struct {
	slots []byte
	len   uint64
	mask  uint64 // len-1 when len is a power of two, otherwise 0
}

// New returns a view over buf, which must hold a whole number of slots.
func New(buf []byte) (*Table, error) {
	if len(buf) == 0 || len(buf)%SlotSize != 0 {
		return nil, fmt.Errorf("buckets.New: length %d is not a positive multiple of %d", len(buf), SlotSize)
	}
	n := uint64(len(buf) / SlotSize)
	t := &Table{
		slots: buf,
		len:   n,
	}
	if bits.OnesCount64(n) == 1 {
		t.mask = n - 1
	}
	return t, nil
}

// Len is the number of buckets.
func (t *Table) Len() uint64 {
	return t.len
}

// Index reduces a hash to a bucket number.
func (t *Table) Index(hash uint64) uint64 {
	if t.mask != 0 || t.len == 1 {
		return hash & t.mask
	}
	return hash % t.len
}

// Head returns the offset of the first entry in bucket i, or Empty.
func (t *Table) Head(i uint64) (uint64, error) {
	if i >= t.len {
		return 0, fmt.Errorf("bucket (%d) out of range (len %d)", i, t.len)
	}
	return binary.LittleEndian.Uint64(t.slots[i*SlotSize : i*SlotSize+SlotSize]), nil
}

// SetHead points bucket i at off.
func (t *Table) SetHead(i uint64, off uint64) error {
	if i >= t.len {
		return fmt.Errorf("bucket (%d) out of range (len %d)", i, t.len)
	}
	binary.LittleEndian.PutUint64(t.slots[i*SlotSize:i*SlotSize+SlotSize], off)
	return nil
}

// Used counts non-empty buckets.
func (t *Table) Used() uint64 {
	var n uint64
	for i := uint64(0); i < t.len; i++ {
		if binary.LittleEndian.Uint64(t.slots[i*SlotSize:i*SlotSize+SlotSize]) != Empty {
			n++
		}
	}
	return n
}
