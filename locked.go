// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package arenakv

import (
	"sync"
)

// Locked serializes every operation on a Table behind one mutex.  The
// cursor advance, chain-head swap and filter update in Put only make
// sense together, so there is no finer-grained locking.
type Locked struct {
	mu sync.Mutex
	t  *Table
}

// NewLocked takes ownership of t; t must not be used directly afterwards.
func NewLocked(t *Table) *Locked {
	return &Locked{t: t}
}

// Put is Table.Put under the lock.
func (l *Locked) Put(key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Put(key, value)
}

// Get is Table.Get under the lock.  The returned value is a copy, so it
// stays valid after the lock is released.
func (l *Locked) Get(key []byte) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Get(key)
}

// Len is Table.Len under the lock.
func (l *Locked) Len() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Len()
}

// Usage is Table.Usage under the lock.
func (l *Locked) Usage() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Usage()
}

// Stats is Table.Stats under the lock.  It walks every chain, so it
// holds the lock for time linear in the table size.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Stats()
}

// Close closes the underlying Table.
func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Close()
}
