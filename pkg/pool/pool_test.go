package pool_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/pool"
)

func TestNew_Empty(t *testing.T) {
	_, err := pool.New(nil)
	assert.ErrorIs(t, err, domain.ErrNoSentences)

	_, err = pool.New([]string{})
	assert.ErrorIs(t, err, domain.ErrNoSentences)
}

func TestPool_ThreeSentences(t *testing.T) {
	p, err := pool.New([]string{"a", "b", "c"})
	require.NoError(t, err)

	var got []string
	for range 3 {
		s, ok := p.Draw()
		require.True(t, ok)
		got = append(got, s)
	}

	assert.True(t, p.IsEmpty())
	assert.Equal(t, 3, p.DrawnCount())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got)

	s, ok := p.Draw()
	assert.False(t, ok)
	assert.Empty(t, s)
	assert.Equal(t, 3, p.DrawnCount(), "empty draw must not change counters")
}

func TestPool_DrawsExactlyTheInputSet(t *testing.T) {
	input := make([]string, 100)
	for i := range input {
		input[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}

	for seed := range uint64(20) {
		p, err := pool.New(input, pool.WithSeed(seed))
		require.NoError(t, err)

		seen := make(map[string]bool)
		for i := range input {
			assert.Equal(t, len(input), p.DrawnCount()+p.RemainingCount())
			s, ok := p.Draw()
			require.True(t, ok, "draw %d", i)
			require.False(t, seen[s], "sentence %q drawn twice", s)
			seen[s] = true
		}
		_, ok := p.Draw()
		assert.False(t, ok)
		assert.Len(t, seen, len(input))
	}
}

func TestPool_DoesNotAliasInput(t *testing.T) {
	input := []string{"a", "b", "c", "d"}
	p, err := pool.New(input, pool.WithSeed(7))
	require.NoError(t, err)

	input[0] = "mutated"
	var got []string
	for !p.IsEmpty() {
		s, _ := p.Draw()
		got = append(got, s)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, got)
}

func TestPool_SeedIsReproducible(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f"}
	drain := func() []string {
		p, err := pool.New(input, pool.WithSeed(42))
		require.NoError(t, err)
		var out []string
		for !p.IsEmpty() {
			s, _ := p.Draw()
			out = append(out, s)
		}
		return out
	}
	assert.Equal(t, drain(), drain())
}

func TestPool_Restock(t *testing.T) {
	p, err := pool.New([]string{"a", "b"}, pool.WithSeed(1))
	require.NoError(t, err)
	p.Draw()
	p.Draw()
	require.True(t, p.IsEmpty())

	p.Restock()
	assert.Equal(t, 2, p.RemainingCount())
	assert.Equal(t, 0, p.DrawnCount())
}

// Each element must land in each position with equal probability.
// Chi-square over a K×K table of (element, position) counts.
func TestShuffle_Uniformity(t *testing.T) {
	const (
		k      = 5
		trials = 50000
	)
	rng := rand.New(rand.NewPCG(2026, 214))

	var counts [k][k]int
	base := []int{0, 1, 2, 3, 4}
	buf := make([]int, k)
	for range trials {
		copy(buf, base)
		pool.Shuffle(buf, rng)
		for pos, elem := range buf {
			counts[elem][pos]++
		}
	}

	expected := float64(trials) / k
	for elem := range k {
		chi2 := 0.0
		for pos := range k {
			d := float64(counts[elem][pos]) - expected
			chi2 += d * d / expected
		}
		// 4 degrees of freedom; p=0.001 critical value is 18.47.
		assert.Less(t, chi2, 18.47, "element %d positions %v", elem, counts[elem])
	}
}

// A biased shuffle (swap with any index in [0, n)) yields n^n outcomes that
// cannot map evenly onto n! permutations; all 3! permutations must appear
// with close to equal frequency.
func TestShuffle_AllPermutationsEquallyLikely(t *testing.T) {
	const trials = 60000
	rng := rand.New(rand.NewPCG(99, 1))

	counts := make(map[string]int)
	for range trials {
		s := []string{"a", "b", "c"}
		pool.Shuffle(s, rng)
		counts[s[0]+s[1]+s[2]]++
	}
	require.Len(t, counts, 6)

	expected := float64(trials) / 6
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	// 5 degrees of freedom; p=0.001 critical value is 20.52.
	assert.Less(t, chi2, 20.52, "permutation counts %v", counts)
}
