// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package khash computes the three independent 64-bit key hashes
// shared by the Bloom filter and the bucket table.
package khash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"
)

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Sums holds one key's hashes.  Sums[0] is the primary hash: it picks
// the key's bucket as well as its first Bloom bit.
type Sums [3]uint64

// Primary returns the hash used for bucket selection.
func Primary(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// Secondary is FarmHash, unrelated in construction to xxhash.
func Secondary(key []byte) uint64 {
	return farm.Hash64(key)
}

// Tertiary is 64-bit FNV-1a.  It is inlined rather than going through
// hash/fnv to avoid the hash.Hash64 allocation on every lookup.
func Tertiary(key []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, b := range key {
		h ^= uint64(b)
		h *= fnvPrime64
	}
	return h
}

// Sum computes all three hashes of key.
func Sum(key []byte) Sums {
	return Sums{Primary(key), Secondary(key), Tertiary(key)}
}
