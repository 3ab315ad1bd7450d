// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zero zeroes regions of memory in place.
package zero

// Bytes sets every byte of b to 0.  The loop is recognized by the
// compiler and lowered to a memclr.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
