package bench

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/go-bond/slotsort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, p := range Patterns {
		data, err := Generate(p, 1000, rnd)
		require.NoError(t, err, p)
		assert.Len(t, data, 1000, p)
	}

	sorted, err := Generate(Sorted, 5, rnd)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, sorted)

	reversed, err := Generate(Reversed, 4, rnd)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, reversed)

	pipe, err := Generate(OrganPipe, 6, rnd)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 0}, pipe)

	_, err = Generate("zigzag", 10, rnd)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	algos, err := ParseAlgos("all")
	require.NoError(t, err)
	assert.Equal(t, Algos, algos)

	algos, err = ParseAlgos("tim")
	require.NoError(t, err)
	assert.Equal(t, []Algo{Tim}, algos)

	_, err = ParseAlgos("bubble")
	assert.Error(t, err)

	p, err := ParsePattern("dups")
	require.NoError(t, err)
	assert.Equal(t, Dups, p)

	_, err = ParsePattern("zigzag")
	assert.Error(t, err)
}

func TestRunPattern_AllSorted(t *testing.T) {
	for _, p := range Patterns {
		results, err := RunPattern(Algos, p, 2000, 16, 1)
		require.NoError(t, err)
		require.Len(t, results, len(Algos))

		for _, res := range results {
			assert.True(t, res.Sorted, "%s on %s", res.Algo, p)
			assert.Equal(t, p, res.Pattern)
			assert.Equal(t, 2000, res.N)
			assert.Positive(t, res.Compares)
		}
	}
}

func TestRun_SortedInput(t *testing.T) {
	data, err := Generate(Sorted, 1000, nil)
	require.NoError(t, err)

	res, err := Run(Tim, data, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(999), res.Compares)
	assert.Zero(t, res.Swaps)
	assert.Zero(t, res.Moves)
	assert.Equal(t, 10, res.MaxTemp)

	res, err = Run(Merge, data, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Swaps)
	assert.Zero(t, res.MaxTemp)
}

func TestRun_IntroWorstCaseBound(t *testing.T) {
	const n = 10_000
	bound := int64(8 * n * slotsort.CeilLog2(n))

	for _, p := range []Pattern{Sorted, Reversed, OrganPipe, Dups, Sawtooth} {
		data, err := Generate(p, n, rand.New(rand.NewSource(3)))
		require.NoError(t, err)

		res, err := Run(Intro, data, 0)
		require.NoError(t, err)
		assert.True(t, res.Sorted)
		assert.LessOrEqual(t, res.Compares, bound, p)
	}
}

func TestRun_TimMovesOnlyWithBudget(t *testing.T) {
	data, err := Generate(Random, 3000, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	noTemp, err := Run(Tim, slices.Clone(data), 0)
	require.NoError(t, err)
	assert.Zero(t, noTemp.Moves)

	withTemp, err := Run(Tim, slices.Clone(data), 3000)
	require.NoError(t, err)
	assert.Positive(t, withTemp.Moves)
	assert.Less(t, withTemp.Swaps, noTemp.Swaps)
}

func TestRun_Errors(t *testing.T) {
	_, err := Run("bubble", []int{2, 1}, 0)
	assert.Error(t, err)

	_, err = Run(Tim, []int{2, 1}, -1)
	assert.Error(t, err)
}

func TestCounter_SaveRestore(t *testing.T) {
	c := NewCounter([]int{5, 6, 7}, 2)
	c.Save(1, 2)
	c.Restore(1, 0)
	assert.Equal(t, []int{7, 6, 7}, c.Data)
	assert.Equal(t, -1, c.CompareSaved(0, 0))
	assert.Equal(t, int64(3), c.Moves())
	assert.Equal(t, int64(1), c.Compares)
}

func BenchmarkRun(b *testing.B) {
	for _, algo := range Algos {
		b.Run(string(algo), func(b *testing.B) {
			data, _ := Generate(Random, 10_000, rand.New(rand.NewSource(1)))
			for i := 0; i < b.N; i++ {
				_, _ = Run(algo, slices.Clone(data), 10_000/64)
			}
		})
	}
}
