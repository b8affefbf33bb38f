package slotsort

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCheckRange(t *testing.T) {
	require.NoError(t, CheckRange(0, 0))
	require.NoError(t, CheckRange(3, 7))

	err := CheckRange(5, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 5, rangeErr.From)
	assert.Equal(t, 4, rangeErr.To)
	assert.Contains(t, err.Error(), "from=5 and to=4")
}

func TestSorter_Reverse(t *testing.T) {
	slots := newTestSlots([]int{1, 2, 3, 4, 5, 6}, 0)
	s := NewSorter(slots)

	s.Reverse(1, 5)
	assert.Equal(t, []int{1, 5, 4, 3, 2, 6}, slots.keys())
	assert.Equal(t, 2, slots.swaps)

	s.Reverse(2, 2)
	s.Reverse(2, 3)
	assert.Equal(t, []int{1, 5, 4, 3, 2, 6}, slots.keys())
}

func TestSorter_Rotate(t *testing.T) {
	tests := []struct {
		name          string
		lo, mid, hi   int
		expected      []int
		expectedSwaps int
	}{
		{name: "empty left", lo: 2, mid: 2, hi: 5, expected: []int{0, 1, 2, 3, 4, 5, 6}},
		{name: "empty right", lo: 2, mid: 5, hi: 5, expected: []int{0, 1, 2, 3, 4, 5, 6}},
		{name: "equal halves", lo: 0, mid: 3, hi: 6, expected: []int{3, 4, 5, 0, 1, 2, 6}, expectedSwaps: 3},
		{name: "longer left", lo: 1, mid: 5, hi: 7, expected: []int{0, 5, 6, 1, 2, 3, 4}, expectedSwaps: 2 + 1 + 3},
		{name: "longer right", lo: 0, mid: 1, hi: 4, expected: []int{1, 2, 3, 0, 4, 5, 6}, expectedSwaps: 0 + 1 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := newTestSlots([]int{0, 1, 2, 3, 4, 5, 6}, 0)
			NewSorter(slots).Rotate(tt.lo, tt.mid, tt.hi)
			assert.Equal(t, tt.expected, slots.keys())
			assert.Equal(t, tt.expectedSwaps, slots.swaps)
		})
	}
}

func TestSorter_LowerUpper(t *testing.T) {
	// the searched value lives in the last slot, outside the searched range
	slots := newTestSlots([]int{1, 2, 2, 2, 5, 7, 2}, 0)
	s := NewSorter(slots)

	assert.Equal(t, 1, s.Lower(0, 6, 6))
	assert.Equal(t, 4, s.Upper(0, 6, 6))
	assert.Equal(t, 1, s.Lower2(0, 6, 6))
	assert.Equal(t, 4, s.Upper2(0, 6, 6))

	assert.Equal(t, 3, s.Lower(3, 3, 6))
	assert.Equal(t, 3, s.Upper2(3, 3, 6))
}

func TestSorter_Lower2Upper2MatchBinarySearch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfN(rapid.IntRange(0, 20), 1, 200).Draw(t, "keys")
		target := rapid.IntRange(-1, 21).Draw(t, "target")

		sort.Ints(keys)
		slots := newTestSlots(append(keys, target), 0)
		s := NewSorter(slots)

		n := len(keys)
		from := rapid.IntRange(0, n).Draw(t, "from")
		to := rapid.IntRange(from, n).Draw(t, "to")

		lower := s.Lower(from, to, n)
		upper := s.Upper(from, to, n)
		if got := s.Lower2(from, to, n); got != lower {
			t.Fatalf("Lower2(%d, %d) = %d, Lower = %d", from, to, got, lower)
		}
		if got := s.Upper2(from, to, n); got != upper {
			t.Fatalf("Upper2(%d, %d) = %d, Upper = %d", from, to, got, upper)
		}
		if expected := from + sort.SearchInts(keys[from:to], target); lower != expected {
			t.Fatalf("Lower(%d, %d) = %d, expected %d", from, to, lower, expected)
		}
	})
}

func TestSorter_InsertionSort(t *testing.T) {
	slots := newTestSlots([]int{9, 3, 7, 3, 1, 0}, 0)
	NewSorter(slots).InsertionSort(1, 5)

	assert.Equal(t, []int{9, 1, 3, 3, 7, 0}, slots.keys())
	assert.Equal(t, []int{0, 4, 1, 3, 2, 5}, slots.tags())
}

func TestSorter_BinarySort(t *testing.T) {
	slots := newTestSlots([]int{1, 4, 6, 8, 5, 0, 4, 9}, 0)
	NewSorter(slots).BinarySort(0, 8, 4)

	assert.Equal(t, []int{0, 1, 4, 4, 5, 6, 8, 9}, slots.keys())
	requireStable(t, slots)
}

func TestSorter_HeapSort(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 2, 3, 10, 101, 1000} {
		slots := newTestSlots(randomKeys(rnd, n, 50), 0)
		NewSorter(slots).HeapSort(0, n)
		requireSorted(t, slots, 0, n)
		requirePermutation(t, slots)
	}
}

func TestSorter_HeapSortSubRange(t *testing.T) {
	slots := newTestSlots([]int{100, 5, 3, 9, 1, -100}, 0)
	NewSorter(slots).HeapSort(1, 5)
	assert.Equal(t, []int{100, 1, 3, 5, 9, -100}, slots.keys())
}

func TestSorter_MergeInPlace(t *testing.T) {
	t.Run("already ordered", func(t *testing.T) {
		slots := newTestSlots([]int{1, 2, 3, 4, 5, 6}, 0)
		NewSorter(slots).MergeInPlace(0, 3, 6)
		assert.Equal(t, 1, slots.compares)
		assert.Zero(t, slots.swaps)
	})

	t.Run("two slots", func(t *testing.T) {
		slots := newTestSlots([]int{2, 1}, 0)
		NewSorter(slots).MergeInPlace(0, 1, 2)
		assert.Equal(t, []int{1, 2}, slots.keys())
		assert.Equal(t, 1, slots.swaps)
	})

	t.Run("interleaved", func(t *testing.T) {
		slots := newTestSlots([]int{1, 3, 5, 7, 9, 2, 3, 4, 8}, 0)
		NewSorter(slots).MergeInPlace(0, 5, 9)
		assert.Equal(t, []int{1, 2, 3, 3, 4, 5, 7, 8, 9}, slots.keys())
		requireStable(t, slots)
	})
}

func TestSorter_MergeInPlaceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		left := rapid.SliceOf(rapid.IntRange(0, 30)).Draw(t, "left")
		right := rapid.SliceOf(rapid.IntRange(0, 30)).Draw(t, "right")
		sort.Ints(left)
		sort.Ints(right)

		slots := newTestSlots(append(append([]int{}, left...), right...), 0)
		NewSorter(slots).MergeInPlace(0, len(left), len(left)+len(right))

		requireSorted(t, slots, 0, len(slots.a))
		requireStable(t, slots)
	})
}
