// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build linux || darwin || freebsd

package region

import (
	"golang.org/x/sys/unix"
)

// mapAnon returns size bytes of zeroed, private, anonymous memory.
func mapAnon(size int64) ([]byte, error) {
	return unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(m []byte) error {
	return unix.Munmap(m)
}

// adviseRandom tells the kernel not to bother with readahead: bucket
// chains jump around the data zone.
func adviseRandom(m []byte) error {
	return unix.Madvise(m, unix.MADV_RANDOM)
}

func lock(m []byte) error {
	return unix.Mlock(m)
}
