// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package buckets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Errors(t *testing.T) {
	for _, n := range []int{0, 7, 12} {
		_, err := New(make([]byte, n))
		require.Error(t, err, "len %d", n)
	}
}

func TestTable_GetSet(t *testing.T) {
	const tableLen = 12
	buf := make([]byte, tableLen*SlotSize)
	tbl, err := New(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(tableLen), tbl.Len())

	err = tbl.SetHead(12, 0)
	require.Error(t, err)
	_, err = tbl.Head(13)
	require.Error(t, err)

	for i := uint64(0); i < tableLen; i++ {
		head, err := tbl.Head(i)
		require.NoError(t, err)
		require.Equal(t, Empty, head)
	}
	require.Equal(t, uint64(0), tbl.Used())

	for i := uint64(0); i < tableLen; i++ {
		err := tbl.SetHead(i, i*2)
		require.NoError(t, err)
	}
	for i := uint64(0); i < tableLen; i++ {
		v, err := tbl.Head(i)
		require.NoError(t, err)
		require.Equal(t, i*2, v)
	}
	// bucket 0 was set to 0 == Empty
	require.Equal(t, uint64(tableLen-1), tbl.Used())

	// little-endian in the backing buffer
	require.NoError(t, tbl.SetHead(1, 0x0102030405060708))
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, buf[8:16])
}

func TestTable_Index(t *testing.T) {
	pow2, err := New(make([]byte, 1024*SlotSize))
	require.NoError(t, err)
	odd, err := New(make([]byte, 1000*SlotSize))
	require.NoError(t, err)
	one, err := New(make([]byte, SlotSize))
	require.NoError(t, err)

	for _, h := range []uint64{0, 1, 1023, 1024, 1 << 40, ^uint64(0)} {
		require.Equal(t, h%1024, pow2.Index(h))
		require.Equal(t, h%1000, odd.Index(h))
		require.Equal(t, uint64(0), one.Index(h))
	}
}
