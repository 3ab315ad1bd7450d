// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zero

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	for _, input := range [][]byte{
		{},
		{'a', 'b', 'c'},
		{0xff, 0, 0xff, 0, 0xff, 0, 0xff, 0, 0xff},
	} {
		initialLen := len(input)
		initialCap := cap(input)
		// slices are zero'd by default
		expected := make([]byte, len(input))
		Bytes(input)
		require.Equal(t, expected, input)
		// len and cap should be unchanged
		require.Equal(t, initialLen, len(input))
		require.Equal(t, initialCap, cap(input))
	}
}

func TestBytes_SubsliceOnly(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	Bytes(buf[1:3])
	require.Equal(t, []byte{1, 0, 0, 4, 5}, buf)
}
