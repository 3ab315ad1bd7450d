// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !linux

package region

// physicalMemory is unknown off Linux; heapAlloc then relies on make.
func physicalMemory() (uint64, bool) {
	return 0, false
}
