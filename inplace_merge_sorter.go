package slotsort

// InPlaceMergeSorter is a stable merge sort that allocates nothing: merges
// are done with MergeInPlace. It performs O(n log n) comparisons but more
// swaps than a buffered merge sort.
type InPlaceMergeSorter struct {
	*Sorter
}

func NewInPlaceMergeSorter(data Interface) *InPlaceMergeSorter {
	return &InPlaceMergeSorter{Sorter: NewSorter(data)}
}

func (s *InPlaceMergeSorter) Sort(from, to int) error {
	if err := CheckRange(from, to); err != nil {
		return err
	}
	s.mergeSort(from, to)
	return nil
}

func (s *InPlaceMergeSorter) mergeSort(from, to int) {
	if to-from < insertionSortThreshold {
		s.InsertionSort(from, to)
		return
	}
	mid := int(uint(from+to) >> 1)
	s.mergeSort(from, mid)
	s.mergeSort(mid, to)
	s.MergeInPlace(from, mid, to)
}

var _ RangeSorter = (*InPlaceMergeSorter)(nil)
