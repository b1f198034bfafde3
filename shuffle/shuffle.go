// Package shuffle produces deterministic permutations seeded by a string key.
//
// The algorithm is fixed, since it defines every mapping built on top of it:
//
//  1. seed = XXH64(key), hash seed 0.
//  2. The k-th draw, k = 0, 1, 2, ..., is XXH64(be64(seed) || be64(k)), where
//     be64 is the 8-byte big-endian encoding.
//  3. A draw in [0, n) rejects values >= 2^64 - (2^64 mod n) and takes the
//     remainder mod n of the first accepted value.
//  4. Fisher-Yates from the back: for i = len-1 down to 1, swap i with a
//     draw in [0, i+1).
//
// Output depends only on the key bytes and XXH64, so it is identical across
// processes, machines and Go releases. None of this is cryptographic.
package shuffle

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Shuffle returns a permutation of items keyed by key. items is not modified.
func Shuffle[T any](items []T, key string) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) < 2 {
		return out
	}

	g := newSource(key)
	for i := len(out) - 1; i > 0; i-- {
		j := g.intn(uint64(i + 1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// source is a counter-mode generator over XXH64.
type source struct {
	buf     [16]byte
	counter uint64
}

func newSource(key string) *source {
	s := &source{}
	binary.BigEndian.PutUint64(s.buf[:8], xxhash.Sum64String(key))
	return s
}

func (s *source) uint64() uint64 {
	binary.BigEndian.PutUint64(s.buf[8:], s.counter)
	s.counter++
	return xxhash.Sum64(s.buf[:])
}

// intn returns a uniform value in [0, n). n must be positive.
func (s *source) intn(n uint64) uint64 {
	limit := math.MaxUint64 - math.MaxUint64%n
	if math.MaxUint64%n == n-1 {
		// n divides 2^64 exactly; every draw is usable.
		return s.uint64() % n
	}
	for {
		v := s.uint64()
		if v < limit {
			return v % n
		}
	}
}
