// Copyright 2026 The arenakv Authors and Caleb Spare. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitset(t *testing.T) {
	b := New(128)

	require.Equal(t, 16, len(b.bits))
	require.Equal(t, int64(128), b.Len())

	// should do nothing
	b.Set(132)
	b.Set(-1)

	zero := make([]byte, 16)
	require.Equal(t, zero, b.bits)
	require.Equal(t, int64(0), b.Count())

	require.False(t, b.IsSet(7))
	b.Set(7)
	require.True(t, b.IsSet(7))
	b.Set(8)
	require.True(t, b.IsSet(8))
	require.Equal(t, byte(0x80), b.bits[0])
	require.Equal(t, byte(0x01), b.bits[1])
	require.Equal(t, int64(2), b.Count())

	// setting twice is idempotent
	b.Set(8)
	require.Equal(t, int64(2), b.Count())

	for i := int64(0); i < 128; i++ {
		b.Set(i)
	}

	full := make([]byte, 16)
	for i := range full {
		full[i] = 0xff
	}
	require.Equal(t, full, b.bits)
	require.Equal(t, int64(128), b.Count())
	require.False(t, b.IsSet(128))
}

func TestView_SharesMemory(t *testing.T) {
	buf := make([]byte, 4)
	b := View(buf)
	require.Equal(t, int64(32), b.Len())

	b.Set(9)
	require.Equal(t, []byte{0, 0x02, 0, 0}, buf)

	buf[3] = 0x80
	require.True(t, b.IsSet(31))
	require.Equal(t, int64(2), b.Count())
}

func TestNew_RoundsUp(t *testing.T) {
	b := New(10)
	require.Equal(t, 2, len(b.bits))
	require.Equal(t, int64(10), b.Len())
	b.Set(10)
	require.False(t, b.IsSet(10))
	b.Set(9)
	require.True(t, b.IsSet(9))
}
