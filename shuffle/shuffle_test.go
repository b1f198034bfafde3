package shuffle

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alnum = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestShuffle_Golden(t *testing.T) {
	// These orderings define every encoded ID in existence. If this test
	// fails, the algorithm changed and previously issued IDs no longer decode.
	tests := []struct {
		items []string
		key   string
		want  []string
	}{
		{strings.Split("abcd", ""), "key1", []string{"b", "d", "c", "a"}},
		{strings.Split("abcd", ""), "key2", []string{"b", "a", "c", "d"}},
		{
			strings.Split(alnum, ""),
			"Random secret stringa",
			strings.Split("TG6o9bOYPmVqX2SlLcvInzyxKJMR481sQhpFZaijeBDdN7AU5wrW3uk0CEfHgt", ""),
		},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, Shuffle(tc.items, tc.key))
		})
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	items := strings.Split(alnum, "")
	first := Shuffle(items, "key1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Shuffle(items, "key1"))
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := strings.Split(alnum, "")
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("key-%d", i)
		got := Shuffle(items, key)
		require.Len(t, got, len(items))
		assert.ElementsMatch(t, items, got, "key %q", key)
	}
}

func TestShuffle_KeepsDuplicates(t *testing.T) {
	items := []int{1, 1, 2, 3, 3, 3}
	got := Shuffle(items, "dups")
	assert.ElementsMatch(t, items, got)
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	items := strings.Split(alnum, "")
	orig := slices.Clone(items)
	_ = Shuffle(items, "anything")
	assert.Equal(t, orig, items)
}

func TestShuffle_SmallInputs(t *testing.T) {
	assert.Empty(t, Shuffle([]string{}, "k"))
	assert.Empty(t, Shuffle[string](nil, "k"))
	assert.Equal(t, []string{"x"}, Shuffle([]string{"x"}, "k"))
}

func TestShuffle_KeySensitivity(t *testing.T) {
	items := strings.Split(alnum, "")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[strings.Join(Shuffle(items, fmt.Sprintf("secret%d", i)), "")] = true
	}
	assert.Len(t, seen, 100, "distinct keys should give distinct permutations")
}

func TestShuffle_Distribution(t *testing.T) {
	// 3 items have 6 orderings; each should turn up about 1/6 of the time.
	const keys = 6000
	counts := make(map[string]int)
	for i := 0; i < keys; i++ {
		counts[strings.Join(Shuffle([]string{"a", "b", "c"}, fmt.Sprintf("k%d", i)), "")]++
	}
	require.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, keys/6, n, 200, "ordering %s", perm)
	}
}

func TestShuffle_PositionUniformity(t *testing.T) {
	// Every item should land in the first slot about equally often.
	const keys = 10000
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	first := make([]int, len(items))
	for i := 0; i < keys; i++ {
		first[Shuffle(items, fmt.Sprintf("pos-%d", i))[0]]++
	}
	for item, n := range first {
		assert.InDelta(t, keys/len(items), n, 200, "item %d", item)
	}
}

func TestSourceIntn(t *testing.T) {
	s := newSource("bounds")
	for _, n := range []uint64{1, 2, 3, 7, 62, 1 << 32, 1<<63 + 1} {
		for i := 0; i < 100; i++ {
			assert.Less(t, s.intn(n), n)
		}
	}
}

func BenchmarkShuffle(b *testing.B) {
	items := strings.Split(alnum, "")
	for i := 0; i < b.N; i++ {
		Shuffle(items, "bench")
	}
}
