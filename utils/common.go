package utils

// SortShim adapts plain functions to the sorter hooks. When CompareFn is
// nil, Compare is derived from LessFn, so the same shim also satisfies
// sort.Interface.
type SortShim struct {
	SwapFn    func(i, j int)
	Length    int
	LessFn    func(i, j int) bool
	CompareFn func(i, j int) int
}

func (s *SortShim) Len() int {
	return s.Length
}

func (s *SortShim) Swap(i, j int) {
	s.SwapFn(i, j)
}

func (s *SortShim) Less(i, j int) bool {
	if s.LessFn != nil {
		return s.LessFn(i, j)
	}
	return s.CompareFn(i, j) < 0
}

func (s *SortShim) Compare(i, j int) int {
	if s.CompareFn != nil {
		return s.CompareFn(i, j)
	}
	switch {
	case s.LessFn(i, j):
		return -1
	case s.LessFn(j, i):
		return 1
	default:
		return 0
	}
}

// ArrayN returns the identity permutation [0, n).
func ArrayN(n int) []int {
	arr := make([]int, n)
	for i := 0; i < n; i++ {
		arr[i] = i
	}
	return arr
}

// ArrayN32 is ArrayN for uint32 ordinals.
func ArrayN32(n int) []uint32 {
	arr := make([]uint32, n)
	for i := 0; i < n; i++ {
		arr[i] = uint32(i)
	}
	return arr
}
