// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package entry encodes the variable-length records stored in the data
// zone.  Each record starts with a fixed 16-byte header:
//
//	 0    1    2    3    4    5    6    7
//	+----+----+----+----+----+----+----+----+
//	| key length        | value length      |
//	+----+----+----+----+----+----+----+----+
//	| offset of next entry in the chain     |
//	+----+----+----+----+----+----+----+----+
//	| key...            | value...     |pad |
//	+----+----+----+----+----+----+----+----+
//
// All integers are little-endian.  Records are padded to
// region.Alignment so that every header starts on an 8-byte boundary.
package entry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/bpowers/arenakv/internal/region"
)

const (
	HeaderSize = 4 + 4 + 8

	MaxKeyLen   = math.MaxUint32
	MaxValueLen = math.MaxUint32

	headerKeyLenOff   = 0
	headerValueLenOff = 4
	headerNextOff     = 8
)

var ErrTooLarge = errors.New("entry: key or value too large")

// Header is the decoded fixed-size prefix of a record.
type Header struct {
	KeyLen   uint32
	ValueLen uint32
	Next     uint64
}

// Size is the aligned number of bytes a record for key and value occupies.
func Size(keyLen, valueLen int) int64 {
	return region.Align(HeaderSize + int64(keyLen) + int64(valueLen))
}

// Check reports ErrTooLarge if key or value can't be described by a header.
func Check(key, value []byte) error {
	if uint64(len(key)) > MaxKeyLen {
		return fmt.Errorf("%w: key length %d", ErrTooLarge, len(key))
	}
	if uint64(len(value)) > MaxValueLen {
		return fmt.Errorf("%w: value length %d", ErrTooLarge, len(value))
	}
	return nil
}

// Encode writes a complete record into buf, which must be at least
// Size(len(key), len(value)) bytes.  Padding bytes are left untouched.
func Encode(buf []byte, key, value []byte, next uint64) error {
	if err := Check(key, value); err != nil {
		return err
	}
	recordLen := HeaderSize + len(key) + len(value)
	if len(buf) < recordLen {
		return fmt.Errorf("entry.Encode: buffer of %d bytes too short for record of %d", len(buf), recordLen)
	}
	header := buf[:HeaderSize]
	// bounds check elimination
	_ = header[HeaderSize-1]
	binary.LittleEndian.PutUint32(header[headerKeyLenOff:headerKeyLenOff+4], uint32(len(key)))
	binary.LittleEndian.PutUint32(header[headerValueLenOff:headerValueLenOff+4], uint32(len(value)))
	binary.LittleEndian.PutUint64(header[headerNextOff:headerNextOff+8], next)

	n := copy(buf[HeaderSize:], key)
	copy(buf[HeaderSize+n:], value)
	return nil
}

// DecodeHeader reads the header at the start of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("entry.DecodeHeader: %d bytes is shorter than a header", len(buf))
	}
	header := buf[:HeaderSize]
	_ = header[HeaderSize-1]
	return Header{
		KeyLen:   binary.LittleEndian.Uint32(header[headerKeyLenOff : headerKeyLenOff+4]),
		ValueLen: binary.LittleEndian.Uint32(header[headerValueLenOff : headerValueLenOff+4]),
		Next:     binary.LittleEndian.Uint64(header[headerNextOff : headerNextOff+8]),
	}, nil
}

// RecordLen is the unpadded length of the record h describes.
func (h Header) RecordLen() int64 {
	return HeaderSize + int64(h.KeyLen) + int64(h.ValueLen)
}

// Split returns the key and value of the record in buf, whose header has
// already been decoded as h.  The returned slices alias buf.
func (h Header) Split(buf []byte) (key, value []byte, err error) {
	if int64(len(buf)) < h.RecordLen() {
		return nil, nil, fmt.Errorf("keyLen %d + valueLen %d beyond bounds (%d)", h.KeyLen, h.ValueLen, len(buf))
	}
	keyEnd := HeaderSize + int64(h.KeyLen)
	key = buf[HeaderSize:keyEnd]
	value = buf[keyEnd : keyEnd+int64(h.ValueLen)]
	return key, value, nil
}
