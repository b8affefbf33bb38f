package slotsort

import "math/bits"

// IntroInterface extends Interface with a pivot cache. Swaps move values
// between slots during partitioning, so the pivot value is copied once by
// SetPivot and compared through ComparePivot.
type IntroInterface interface {
	Interface

	// SetPivot caches the value currently stored in slot i.
	SetPivot(i int)
	// ComparePivot compares the cached pivot with the value in slot j.
	ComparePivot(j int) int
}

// IntroSorter is a median-of-three quicksort that switches to heap sort
// once the recursion gets deeper than ceil(log2(n)). It is not stable.
type IntroSorter struct {
	*Sorter
	data IntroInterface
}

func NewIntroSorter(data IntroInterface) *IntroSorter {
	return &IntroSorter{Sorter: NewSorter(data), data: data}
}

// CeilLog2 returns the smallest k such that 1<<k >= n, and 0 for n <= 1.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.UintSize - bits.LeadingZeros(uint(n-1))
}

func (s *IntroSorter) Sort(from, to int) error {
	if err := CheckRange(from, to); err != nil {
		return err
	}
	s.Quicksort(from, to, CeilLog2(to-from))
	return nil
}

// Quicksort sorts [from, to), falling back to HeapSort when maxDepth runs
// out.
func (s *IntroSorter) Quicksort(from, to, maxDepth int) {
	for {
		if to-from < insertionSortThreshold {
			s.InsertionSort(from, to)
			return
		}
		maxDepth--
		if maxDepth < 0 {
			s.HeapSort(from, to)
			return
		}

		mid := int(uint(from+to) >> 1)

		if s.data.Compare(from, mid) > 0 {
			s.data.Swap(from, mid)
		}
		if s.data.Compare(mid, to-1) > 0 {
			s.data.Swap(mid, to-1)
			if s.data.Compare(from, mid) > 0 {
				s.data.Swap(from, mid)
			}
		}

		left, right := from+1, to-2

		s.data.SetPivot(mid)
		for {
			for s.data.ComparePivot(right) < 0 {
				right--
			}
			for left < right && s.data.ComparePivot(left) >= 0 {
				left++
			}
			if left >= right {
				break
			}
			s.data.Swap(left, right)
			right--
		}

		s.Quicksort(from, left+1, maxDepth)
		// tail call on the right part
		from = left + 1
	}
}

var _ RangeSorter = (*IntroSorter)(nil)
