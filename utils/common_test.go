package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortShim_CompareFromLess(t *testing.T) {
	values := []int{3, 1, 3}
	shim := &SortShim{
		Length: len(values),
		LessFn: func(i, j int) bool { return values[i] < values[j] },
		SwapFn: func(i, j int) { values[i], values[j] = values[j], values[i] },
	}

	assert.Equal(t, 1, shim.Compare(0, 1))
	assert.Equal(t, -1, shim.Compare(1, 0))
	assert.Equal(t, 0, shim.Compare(0, 2))

	sort.Sort(shim)
	assert.Equal(t, []int{1, 3, 3}, values)
}

func TestSortShim_LessFromCompare(t *testing.T) {
	values := []string{"b", "c", "a"}
	shim := &SortShim{
		Length: len(values),
		CompareFn: func(i, j int) int {
			switch {
			case values[i] < values[j]:
				return -1
			case values[i] > values[j]:
				return 1
			}
			return 0
		},
		SwapFn: func(i, j int) { values[i], values[j] = values[j], values[i] },
	}

	require.True(t, shim.Less(0, 1))
	require.False(t, shim.Less(1, 2))

	sort.Sort(shim)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestArrayN(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, ArrayN(4))
	assert.Empty(t, ArrayN(0))
	assert.Equal(t, []uint32{0, 1, 2}, ArrayN32(3))
}
