package slotsort

// insertionSortThreshold is the range length below which the recursive
// algorithms fall back to insertion sort.
const insertionSortThreshold = 20

// Interface is the hook set every sorter drives. Slots are integer
// positions in storage owned by the caller.
//
// Compare returns a negative number, zero or a positive number when the
// value in slot i sorts before, together with, or after the value in slot j.
type Interface interface {
	Compare(i, j int) int
	Swap(i, j int)
}

// RangeSorter sorts the slots in [from, to).
type RangeSorter interface {
	Sort(from, to int) error
}

// Sorter holds the primitives shared by all algorithms of this package. It
// is not safe for concurrent use.
type Sorter struct {
	data Interface

	// rotate moves [mid, hi) in front of [lo, mid); both halves are
	// non-empty when it is called.
	rotate func(lo, mid, hi int)
}

func NewSorter(data Interface) *Sorter {
	s := &Sorter{data: data}
	s.rotate = s.reverseRotate
	return s
}

// CheckRange reports a *RangeError when to < from.
func CheckRange(from, to int) error {
	if to < from {
		return &RangeError{From: from, To: to}
	}
	return nil
}

// Reverse reverses the order of the slots in [from, to).
func (s *Sorter) Reverse(from, to int) {
	for to--; from < to; from, to = from+1, to-1 {
		s.data.Swap(from, to)
	}
}

// Rotate moves [mid, hi) in front of [lo, mid).
func (s *Sorter) Rotate(lo, mid, hi int) {
	if lo == mid || mid == hi {
		return
	}
	s.rotate(lo, mid, hi)
}

func (s *Sorter) reverseRotate(lo, mid, hi int) {
	if mid-lo == hi-mid {
		// equal halves, n/2 swaps instead of n
		for mid < hi {
			s.data.Swap(lo, mid)
			lo++
			mid++
		}
		return
	}
	s.Reverse(lo, mid)
	s.Reverse(mid, hi)
	s.Reverse(lo, hi)
}

// Lower returns the first slot in [from, to) that does not sort before val.
func (s *Sorter) Lower(from, to, val int) int {
	n := to - from
	for n > 0 {
		half := int(uint(n) >> 1)
		mid := from + half
		if s.data.Compare(mid, val) < 0 {
			from = mid + 1
			n = n - half - 1
		} else {
			n = half
		}
	}
	return from
}

// Upper returns the first slot in [from, to) that sorts after val.
func (s *Sorter) Upper(from, to, val int) int {
	n := to - from
	for n > 0 {
		half := int(uint(n) >> 1)
		mid := from + half
		if s.data.Compare(val, mid) < 0 {
			n = half
		} else {
			from = mid + 1
			n = n - half - 1
		}
	}
	return from
}

// Lower2 returns the same slot as Lower. It searches backwards from the end
// of the range with doubling steps, which is faster when the answer lies
// near to.
func (s *Sorter) Lower2(from, to, val int) int {
	f, t := to-1, to
	for f > from {
		if s.data.Compare(f, val) < 0 {
			return s.Lower(f, t, val)
		}
		delta := t - f
		t = f
		f -= delta << 1
	}
	return s.Lower(from, t, val)
}

// Upper2 returns the same slot as Upper. It searches forward from the start
// of the range with doubling steps, which is faster when the answer lies
// near from.
func (s *Sorter) Upper2(from, to, val int) int {
	f, t := from, from+1
	for t < to {
		if s.data.Compare(t, val) > 0 {
			return s.Upper(f, t, val)
		}
		delta := t - f
		f = t
		t += delta << 1
	}
	return s.Upper(f, to, val)
}

// InsertionSort is a stable O(n²) sort for short ranges.
func (s *Sorter) InsertionSort(from, to int) {
	for i := from + 1; i < to; i++ {
		for j := i; j > from; j-- {
			if s.data.Compare(j-1, j) <= 0 {
				break
			}
			s.data.Swap(j-1, j)
		}
	}
}

// BinarySort sorts [from, to) assuming [from, i) is already sorted. Each
// insertion point is found with a binary search; equal values keep their
// relative order.
func (s *Sorter) BinarySort(from, to, i int) {
	for ; i < to; i++ {
		l, h := from, i-1
		for l <= h {
			mid := int(uint(l+h) >> 1)
			if s.data.Compare(i, mid) < 0 {
				h = mid - 1
			} else {
				l = mid + 1
			}
		}
		switch i - l {
		case 2:
			s.data.Swap(l+1, l+2)
			s.data.Swap(l, l+1)
		case 1:
			s.data.Swap(l, l+1)
		case 0:
		default:
			for j := i; j > l; j-- {
				s.data.Swap(j-1, j)
			}
		}
	}
}

// HeapSort sorts [from, to) with a binary max-heap.
func (s *Sorter) HeapSort(from, to int) {
	if to-from <= 1 {
		return
	}
	s.Heapify(from, to)
	for end := to - 1; end > from; end-- {
		s.data.Swap(from, end)
		s.SiftDown(from, from, end)
	}
}

// Heapify arranges [from, to) as a max-heap rooted at from.
func (s *Sorter) Heapify(from, to int) {
	for i := heapParent(from, to-1); i >= from; i-- {
		s.SiftDown(i, from, to)
	}
}

// SiftDown restores the heap property below slot i of the heap [from, to).
func (s *Sorter) SiftDown(i, from, to int) {
	for left := heapChild(from, i); left < to; left = heapChild(from, i) {
		right := left + 1
		if s.data.Compare(i, left) < 0 {
			if right < to && s.data.Compare(left, right) < 0 {
				s.data.Swap(i, right)
				i = right
			} else {
				s.data.Swap(i, left)
				i = left
			}
		} else if right < to && s.data.Compare(i, right) < 0 {
			s.data.Swap(i, right)
			i = right
		} else {
			break
		}
	}
}

func heapParent(from, i int) int {
	return int(uint(i-1-from)>>1) + from
}

func heapChild(from, i int) int {
	return (i-from)<<1 + 1 + from
}

// MergeInPlace merges the sorted ranges [from, mid) and [mid, to) using
// rotations only. It needs no extra memory and is stable.
func (s *Sorter) MergeInPlace(from, mid, to int) {
	if from == mid || mid == to || s.data.Compare(mid-1, mid) <= 0 {
		return
	} else if to-from == 2 {
		s.data.Swap(mid-1, mid)
		return
	}

	// both loops stop before mid since slot mid-1 sorts after slot mid
	for s.data.Compare(from, mid) <= 0 {
		from++
	}
	for s.data.Compare(mid-1, to-1) <= 0 {
		to--
	}

	var firstCut, secondCut, len22 int
	if mid-from > to-mid {
		firstCut = from + int(uint(mid-from)>>1)
		secondCut = s.Lower(mid, to, firstCut)
		len22 = secondCut - mid
	} else {
		len22 = int(uint(to-mid) >> 1)
		secondCut = mid + len22
		firstCut = s.Upper(from, mid, secondCut)
	}
	s.Rotate(firstCut, mid, secondCut)
	newMid := firstCut + len22
	s.MergeInPlace(from, firstCut, newMid)
	s.MergeInPlace(newMid, secondCut, to)
}
