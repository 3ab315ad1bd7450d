// Copyright 2026 The arenakv Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command arenakv-bench times writes, sequential reads, random reads and
// misses against an arenakv table and a built-in Go map.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bpowers/arenakv"
)

var (
	n         = flag.Int("n", 100000, "number of records")
	capacity  = flag.Int64("capacity", 64*1024*1024, "table region size in bytes")
	buckets   = flag.Uint64("buckets", 8*1024, "number of hash buckets")
	bloomBits = flag.Uint64("bloom-bits", 1<<20, "bloom filter size in bits (power of two)")
	backing   = flag.String("backing", "auto", "region backing: auto, mmap or heap")
	seed      = flag.Int64("seed", 12345, "seed for the random-read order")
	input     = flag.String("input", "", "read key:value lines from this file instead of generating keys")
	verbose   = flag.Bool("v", false, "verbose logging")
)

type workload struct {
	keys   [][]byte
	values [][]byte
	misses [][]byte
	order  []int
}

// store is the surface both contenders are measured through.
type store interface {
	Put(k, v []byte) error
	Get(k []byte) ([]byte, bool)
}

type mapStore map[string][]byte

func (m mapStore) Put(k, v []byte) error {
	m[string(k)] = v
	return nil
}

func (m mapStore) Get(k []byte) ([]byte, bool) {
	v, ok := m[string(k)]
	return v, ok
}

type result struct {
	name string
	op   string
	n    int
	dur  time.Duration
}

func (r result) opsPerSec() float64 {
	return float64(r.n) / r.dur.Seconds()
}

// generate builds the synthetic workload in parallel chunks.
func generate(count int, seed int64) (*workload, error) {
	w := &workload{
		keys:   make([][]byte, count),
		values: make([][]byte, count),
		misses: make([][]byte, count),
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	const chunk = 64 * 1024
	for start := 0; start < count; start += chunk {
		start := start
		end := start + chunk
		if end > count {
			end = count
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				w.keys[i] = []byte(fmt.Sprintf("key_%08d", i))
				w.values[i] = []byte(fmt.Sprintf("value_%d_data", i))
				w.misses[i] = []byte(fmt.Sprintf("miss_%08d", i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.order = randomOrder(count, seed)
	return w, nil
}

// load reads key:value lines, in the format cmd/gen-testdata writes.
func load(path string, seed int64) (*workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	w := &workload{}
	s := bufio.NewScanner(bufio.NewReaderSize(f, 16*1024))
	for s.Scan() {
		k, v, ok := bytes.Cut(s.Bytes(), []byte{':'})
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected key:value", path, len(w.keys)+1)
		}
		w.keys = append(w.keys, bytes.Clone(k))
		w.values = append(w.values, bytes.Clone(v))
		w.misses = append(w.misses, []byte(fmt.Sprintf("miss_%08d", len(w.misses))))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	w.order = randomOrder(len(w.keys), seed)
	return w, nil
}

func randomOrder(count int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	order := make([]int, count)
	for i := range order {
		order[i] = rng.Intn(count)
	}
	return order
}

func run(name string, s store, w *workload, logger *slog.Logger) ([]result, error) {
	count := len(w.keys)
	var results []result

	t0 := time.Now()
	for i := 0; i < count; i++ {
		if err := s.Put(w.keys[i], w.values[i]); err != nil {
			if errors.Is(err, arenakv.ErrCapacityExceeded) {
				return nil, fmt.Errorf("%s: full after %d of %d records; raise -capacity: %w", name, i, count, err)
			}
			return nil, fmt.Errorf("%s: put: %w", name, err)
		}
	}
	results = append(results, result{name, "Write", count, time.Since(t0)})

	t0 = time.Now()
	for i := 0; i < count; i++ {
		if _, ok := s.Get(w.keys[i]); !ok {
			return nil, fmt.Errorf("%s: lost key %q", name, w.keys[i])
		}
	}
	results = append(results, result{name, "Seq Read", count, time.Since(t0)})

	t0 = time.Now()
	for _, i := range w.order {
		s.Get(w.keys[i])
	}
	results = append(results, result{name, "Rand Read", count, time.Since(t0)})

	t0 = time.Now()
	hits := 0
	for i := 0; i < count; i++ {
		if _, ok := s.Get(w.misses[i]); ok {
			hits++
		}
	}
	results = append(results, result{name, "Miss Read", count, time.Since(t0)})
	if hits > 0 {
		logger.Warn("miss keys collide with input keys", "store", name, "hits", hits)
	}

	return results, nil
}

func printResults(out *tabwriter.Writer, rs []result) {
	for _, r := range rs {
		fmt.Fprintf(out, "  %s\t%s\t%12.2f ops/sec\t%.4f sec\n", r.name, r.op, r.opsPerSec(), r.dur.Seconds())
	}
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := bench(logger); err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

func bench(logger *slog.Logger) error {
	b, err := arenakv.ParseBacking(*backing)
	if err != nil {
		return err
	}

	var w *workload
	if *input != "" {
		w, err = load(*input, *seed)
	} else {
		w, err = generate(*n, *seed)
	}
	if err != nil {
		return fmt.Errorf("building workload: %w", err)
	}
	count := len(w.keys)
	if count == 0 {
		return errors.New("no records to benchmark")
	}
	logger.Debug("workload ready", "records", count)

	out := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(out, "Records: %d\n\n", count)

	m := make(mapStore, count)
	mapResults, err := run("map", m, w, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, ">>> Go map\n")
	printResults(out, mapResults)

	table, err := arenakv.Open(arenakv.Config{
		CapacityBytes: *capacity,
		BloomBits:     *bloomBits,
		BucketCount:   *buckets,
		Backing:       b,
	}, arenakv.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := table.Close(); err != nil {
			logger.Warn("close failed", "err", err)
		}
	}()

	kvResults, err := run("arenakv", table, w, logger)
	if err != nil {
		return err
	}
	stats := table.Stats()
	fmt.Fprintf(out, "\n>>> arenakv (mmap + bloom filter)\n")
	fmt.Fprintf(out, "  Memory used: %.2f MB\n", float64(table.Usage())/(1024*1024))
	printResults(out, kvResults)
	logger.Debug("table stats", "stats", stats.String())

	fmt.Fprintf(out, "\nOperation\tmap ops/sec\tarenakv ops/sec\twinner\n")
	kvWins := 0
	for i := range kvResults {
		mr, kr := mapResults[i], kvResults[i]
		winner, ratio := "map", kr.dur.Seconds()/mr.dur.Seconds()
		if kr.dur < mr.dur {
			winner, ratio = "arenakv", mr.dur.Seconds()/kr.dur.Seconds()
			kvWins++
		}
		fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%s (%.1fx)\n", kr.op, mr.opsPerSec(), kr.opsPerSec(), winner, ratio)
	}
	overall := "map"
	if kvWins >= 2 {
		overall = "arenakv"
	}
	fmt.Fprintf(out, "\nOverall: %s (%d - %d)\n", overall, kvWins, len(kvResults)-kvWins)

	return out.Flush()
}
