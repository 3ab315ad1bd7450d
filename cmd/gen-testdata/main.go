// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command gen-testdata prints key:value lines for arenakv-bench -input.
// Keys are hex HMAC-SHA256 digests of their values, so they are unique and
// uniformly distributed.
package main

import (
	"bufio"
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
)

const (
	suffixLen = 16
	hmacKey   = "d259c7f656caf7f1"
)

var (
	n      = flag.Int("n", 1000000, "number of key:value lines")
	seed   = flag.Int64("seed", 0, "random seed; 0 picks one at random")
	prefix = flag.String("prefix", "pref_", "value prefix")
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		if _, err := crand.Read(seedBytes[:]); err != nil {
			panic(err)
		}
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rng := newRand(*seed)
	h := hmac.New(sha256.New, []byte(hmacKey))
	out := bufio.NewWriterSize(os.Stdout, 64*1024)

	for i := 0; i < *n; i++ {
		var buf [suffixLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			panic(err)
		}
		value := fmt.Sprintf("%s%x", *prefix, buf)
		h.Reset()
		h.Write([]byte(value))
		key := hex.EncodeToString(h.Sum(nil))

		if _, err := fmt.Fprintf(out, "%s:%s\n", key, value); err != nil {
			logger.Error("write failed", "line", i, "err", err)
			os.Exit(1)
		}
	}
	if err := out.Flush(); err != nil {
		logger.Error("flush failed", "err", err)
		os.Exit(1)
	}
}
