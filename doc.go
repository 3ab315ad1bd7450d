// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package arenakv is an embedded, in-memory key-value table carved out
// of one fixed-size region of (normally mmap'd) memory.
//
// The region is split into three zones when the table is opened:
//
//	┌───────────────────┐
//	│ bloom bitmap      │  BloomBits / 8 bytes
//	├───────────────────┤
//	│ bucket heads      │  BucketCount × uint64
//	├───────────────────┤
//	│ entries           │  append-only
//	│                   │
//	│                   │
//	└───────────────────┘
//
// Put appends an entry to the data zone, links it at the head of its
// bucket's chain, and adds its key to the Bloom filter.  Get asks the
// filter first, so most misses never touch the bucket table; on a
// possible hit it walks the chain newest-to-oldest and returns a copy of
// the first matching value.
//
// Tables never grow, never delete, and never update in place: putting a
// key twice shadows the older value, which keeps occupying space.  When
// the region is full Put returns ErrCapacityExceeded.  Nothing is
// persisted; Close releases the memory.
//
// A Table is for use by a single goroutine.  Wrap it in a Locked to share
// it.
package arenakv
