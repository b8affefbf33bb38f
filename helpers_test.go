package slotsort

import (
	"cmp"
	"math/rand"

	"github.com/stretchr/testify/require"
)

type entry struct {
	key int
	tag int
}

// testSlots implements every hook over a slice of entries and counts the
// calls made by the sorters.
type testSlots struct {
	a     []entry
	tmp   []entry
	pivot entry

	compares int
	swaps    int
	moves    int
	maxSaved int

	// panicAfter makes the comparison hooks panic once that many comparisons
	// were made.
	panicAfter int
}

func newTestSlots(keys []int, maxTempSlots int) *testSlots {
	a := make([]entry, len(keys))
	for i, k := range keys {
		a[i] = entry{key: k, tag: i}
	}
	return &testSlots{a: a, tmp: make([]entry, maxTempSlots)}
}

func (t *testSlots) countCompare() {
	t.compares++
	if t.panicAfter > 0 && t.compares >= t.panicAfter {
		panic("compare failed")
	}
}

func (t *testSlots) Compare(i, j int) int {
	t.countCompare()
	return cmp.Compare(t.a[i].key, t.a[j].key)
}

func (t *testSlots) Swap(i, j int) {
	t.swaps++
	t.a[i], t.a[j] = t.a[j], t.a[i]
}

func (t *testSlots) SetPivot(i int) {
	t.pivot = t.a[i]
}

func (t *testSlots) ComparePivot(j int) int {
	t.countCompare()
	return cmp.Compare(t.pivot.key, t.a[j].key)
}

func (t *testSlots) Copy(src, dest int) {
	t.moves++
	t.a[dest] = t.a[src]
}

func (t *testSlots) Save(start, length int) {
	t.maxSaved = max(t.maxSaved, length)
	copy(t.tmp[:length], t.a[start:start+length])
}

func (t *testSlots) Restore(src, dest int) {
	t.moves++
	t.a[dest] = t.tmp[src]
}

func (t *testSlots) CompareSaved(i, j int) int {
	t.countCompare()
	return cmp.Compare(t.tmp[i].key, t.a[j].key)
}

func (t *testSlots) keys() []int {
	keys := make([]int, len(t.a))
	for i, e := range t.a {
		keys[i] = e.key
	}
	return keys
}

func (t *testSlots) tags() []int {
	tags := make([]int, len(t.a))
	for i, e := range t.a {
		tags[i] = e.tag
	}
	return tags
}

func (t *testSlots) resetCounters() {
	t.compares, t.swaps, t.moves = 0, 0, 0
}

func requireSorted(t require.TestingT, slots *testSlots, from, to int) {
	for i := from + 1; i < to; i++ {
		require.LessOrEqual(t, slots.a[i-1].key, slots.a[i].key, "slots %d and %d out of order", i-1, i)
	}
}

func requireStable(t require.TestingT, slots *testSlots) {
	for i := 1; i < len(slots.a); i++ {
		if slots.a[i-1].key == slots.a[i].key {
			require.Less(t, slots.a[i-1].tag, slots.a[i].tag, "equal keys reordered at slot %d", i)
		}
	}
}

func requirePermutation(t require.TestingT, slots *testSlots) {
	seen := make([]bool, len(slots.a))
	for _, e := range slots.a {
		require.False(t, seen[e.tag], "tag %d present twice", e.tag)
		seen[e.tag] = true
	}
}

func randomKeys(rnd *rand.Rand, n, maxKey int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = rnd.Intn(maxKey)
	}
	return keys
}

func sortedKeys(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	return keys
}

func reversedKeys(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = n - i
	}
	return keys
}

func organPipeKeys(n int) []int {
	keys := make([]int, n)
	for i := 0; i < n/2; i++ {
		keys[i] = i
	}
	for i := n / 2; i < n; i++ {
		keys[i] = n - i
	}
	return keys
}

// sorterFactory builds a sorter over slots; stable reports whether it
// preserves the order of equal keys.
type sorterFactory struct {
	name   string
	stable bool
	new    func(slots *testSlots) RangeSorter
}

func allSorters(maxTempSlots int) []sorterFactory {
	return []sorterFactory{
		{
			name:   "in_place_merge",
			stable: true,
			new:    func(slots *testSlots) RangeSorter { return NewInPlaceMergeSorter(slots) },
		},
		{
			name:   "intro",
			stable: false,
			new:    func(slots *testSlots) RangeSorter { return NewIntroSorter(slots) },
		},
		{
			name:   "tim",
			stable: true,
			new:    func(slots *testSlots) RangeSorter { return NewTimSorter(slots, maxTempSlots) },
		},
	}
}
