// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !linux && !darwin && !freebsd

package region

import (
	"errors"
)

var errNoMmap = errors.New("anonymous mmap not supported on this platform")

func mapAnon(int64) ([]byte, error) {
	return nil, errNoMmap
}

func unmap([]byte) error {
	return errNoMmap
}

func adviseRandom([]byte) error {
	return errNoMmap
}

func lock([]byte) error {
	return errNoMmap
}
