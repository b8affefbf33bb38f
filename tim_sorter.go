package slotsort

import "fmt"

const (
	// minRunLength is the lower bound of MinRun for long ranges.
	minRunLength = 32
	// timThreshold is the range length up to which a single binary-sorted
	// run covers the whole range.
	timThreshold = 64
	// runStackSize bounds the number of pending runs. The merge invariants make
	// pending run lengths grow at least like Fibonacci numbers times
	// minRunLength, so 40 runs cover ranges of roughly 5e9 slots. Longer
	// ranges may overflow the stack and panic.
	runStackSize = 40
	// minGallop is the number of consecutive wins of one merge side after
	// which the merge switches to galloping.
	minGallop = 7
)

// TimInterface extends Interface with access to a temporary storage of at
// most maxTempSlots values.
type TimInterface interface {
	Interface

	// Copy copies the value in slot src into slot dest.
	Copy(src, dest int)
	// Save copies the slots [start, start+length) to the temporary storage,
	// at positions [0, length).
	Save(start, length int)
	// Restore copies the value at position src of the temporary storage into
	// slot dest.
	Restore(src, dest int)
	// CompareSaved compares the value at position i of the temporary storage
	// with the value in slot j.
	CompareSaved(i, j int) int
}

// TimSorter is a stable, adaptive merge sort. It detects natural runs, keeps
// them on a stack whose lengths decrease geometrically and merges them with
// galloping. Merges use up to maxTempSlots of temporary storage and degrade
// to MergeInPlace when a merge does not fit.
//
// A TimSorter keeps its run stack across a Sort call and must not be used by
// several goroutines at once.
type TimSorter struct {
	*Sorter
	data TimInterface

	maxTempSlots int

	minRun    int
	to        int
	stackSize int
	runEnds   [runStackSize + 1]int
}

// NewTimSorter returns a sorter allowed to save up to maxTempSlots values in
// the temporary storage of data. A zero budget makes every merge unbuffered.
func NewTimSorter(data TimInterface, maxTempSlots int) *TimSorter {
	if maxTempSlots < 0 {
		panic(fmt.Sprintf("slotsort: negative temp slots budget: %d", maxTempSlots))
	}
	s := &TimSorter{
		Sorter:       NewSorter(data),
		data:         data,
		maxTempSlots: maxTempSlots,
	}
	s.Sorter.rotate = s.bufferedRotate
	return s
}

func (s *TimSorter) MaxTempSlots() int {
	return s.maxTempSlots
}

// MinRun returns the minimum run length for a range of the given length,
// a value in [32, 64] chosen so that length/MinRun is close to, and not
// above, a power of two.
func MinRun(length int) int {
	n, r := length, 0
	for n >= timThreshold {
		r |= n & 1
		n >>= 1
	}
	return n + r
}

func (s *TimSorter) runLen(i int) int {
	off := s.stackSize - i
	return s.runEnds[off] - s.runEnds[off-1]
}

func (s *TimSorter) runBase(i int) int {
	return s.runEnds[s.stackSize-i-1]
}

func (s *TimSorter) runEnd(i int) int {
	return s.runEnds[s.stackSize-i]
}

func (s *TimSorter) setRunEnd(i, runEnd int) {
	s.runEnds[s.stackSize-i] = runEnd
}

func (s *TimSorter) pushRunLen(n int) {
	if s.stackSize == runStackSize {
		panic(fmt.Sprintf("slotsort: run stack overflow at %d pending runs", runStackSize))
	}
	s.runEnds[s.stackSize+1] = s.runEnds[s.stackSize] + n
	s.stackSize++
}

// Reset clears the run stack and computes minRun for [from, to).
func (s *TimSorter) Reset(from, to int) {
	s.stackSize = 0
	s.runEnds = [runStackSize + 1]int{}
	s.runEnds[0] = from
	s.to = to
	length := to - from
	if length <= timThreshold {
		s.minRun = length
	} else {
		s.minRun = MinRun(length)
	}
}

// NextRun makes the run starting at the end of the top of the stack
// ascending, extends it to minRun slots with BinarySort when it is shorter,
// and returns its length.
func (s *TimSorter) NextRun() int {
	runBase := s.runEnd(0)
	if runBase == s.to-1 {
		return 1
	}
	o := runBase + 2
	if s.data.Compare(runBase, runBase+1) > 0 {
		// strictly descending, so reversing keeps equal values in order
		for o < s.to && s.data.Compare(o-1, o) > 0 {
			o++
		}
		s.Reverse(runBase, o)
	} else {
		for o < s.to && s.data.Compare(o-1, o) <= 0 {
			o++
		}
	}
	runHi := max(o, min(s.to, runBase+s.minRun))
	s.BinarySort(runBase, runHi, o)
	return runHi - runBase
}

// EnsureInvariants merges runs until, for the three topmost runs,
// len(2) > len(1) + len(0) and len(1) > len(0).
func (s *TimSorter) EnsureInvariants() {
	for s.stackSize > 1 {
		runLen0 := s.runLen(0)
		runLen1 := s.runLen(1)

		if s.stackSize > 2 {
			runLen2 := s.runLen(2)
			if runLen2 <= runLen1+runLen0 {
				// merge the smaller of 0 and 2 with 1
				if runLen2 < runLen0 {
					s.MergeAt(1)
				} else {
					s.MergeAt(0)
				}
				continue
			}
		}

		if runLen1 <= runLen0 {
			s.MergeAt(0)
			continue
		}

		break
	}
}

// ExhaustStack merges all pending runs into one.
func (s *TimSorter) ExhaustStack() {
	for s.stackSize > 1 {
		s.MergeAt(0)
	}
}

// MergeAt merges run n+1 with run n, counting from the top of the stack.
func (s *TimSorter) MergeAt(n int) {
	s.Merge(s.runBase(n+1), s.runBase(n), s.runEnd(n))
	for j := n + 1; j > 0; j-- {
		s.setRunEnd(j, s.runEnd(j-1))
	}
	s.stackSize--
}

// Merge merges the sorted ranges [lo, mid) and [mid, hi).
func (s *TimSorter) Merge(lo, mid, hi int) {
	if s.data.Compare(mid-1, mid) <= 0 {
		return
	}
	lo = s.Upper2(lo, mid, mid)
	hi = s.Lower2(mid, hi, mid-1)

	switch {
	case hi-mid <= mid-lo && hi-mid <= s.maxTempSlots:
		s.MergeHi(lo, mid, hi)
	case mid-lo <= s.maxTempSlots:
		s.MergeLo(lo, mid, hi)
	default:
		s.MergeInPlace(lo, mid, hi)
	}
}

func (s *TimSorter) Sort(from, to int) error {
	if err := CheckRange(from, to); err != nil {
		return err
	}
	if to-from <= 1 {
		return nil
	}
	s.Reset(from, to)
	for {
		s.EnsureInvariants()
		s.pushRunLen(s.NextRun())
		if s.runEnd(0) >= to {
			break
		}
	}
	s.ExhaustStack()
	return nil
}

func (s *TimSorter) bufferedRotate(lo, mid, hi int) {
	len1, len2 := mid-lo, hi-mid
	switch {
	case len1 == len2:
		for mid < hi {
			s.data.Swap(lo, mid)
			lo++
			mid++
		}
	case len2 < len1 && len2 <= s.maxTempSlots:
		s.data.Save(mid, len2)
		for i, j := lo+len1-1, hi-1; i >= lo; i, j = i-1, j-1 {
			s.data.Copy(i, j)
		}
		for i, j := 0, lo; i < len2; i, j = i+1, j+1 {
			s.data.Restore(i, j)
		}
	case len1 <= s.maxTempSlots:
		s.data.Save(lo, len1)
		for i, j := mid, lo; i < hi; i, j = i+1, j+1 {
			s.data.Copy(i, j)
		}
		for i, j := 0, lo+len2; j < hi; i, j = i+1, j+1 {
			s.data.Restore(i, j)
		}
	default:
		s.Reverse(lo, mid)
		s.Reverse(mid, hi)
		s.Reverse(lo, hi)
	}
}

// MergeLo merges [lo, mid) and [mid, hi) after saving the left side. The
// first slot of the right side must sort before slot lo.
func (s *TimSorter) MergeLo(lo, mid, hi int) {
	len1 := mid - lo
	s.data.Save(lo, len1)
	s.data.Copy(mid, lo)
	i, j, dest := 0, mid+1, lo+1
outer:
	for {
		for count := 0; count < minGallop; {
			if i >= len1 || j >= hi {
				break outer
			} else if s.data.CompareSaved(i, j) <= 0 {
				s.data.Restore(i, dest)
				i++
				dest++
				count = 0
			} else {
				s.data.Copy(j, dest)
				j++
				dest++
				count++
			}
		}
		// gallop over the run of right-side winners
		next := s.LowerSaved3(j, hi, i)
		for ; j < next; dest++ {
			s.data.Copy(j, dest)
			j++
		}
		s.data.Restore(i, dest)
		i++
		dest++
	}
	for ; i < len1; dest++ {
		s.data.Restore(i, dest)
		i++
	}
}

// MergeHi merges [lo, mid) and [mid, hi) after saving the right side. Slot
// mid-1 must sort after slot hi-1.
func (s *TimSorter) MergeHi(lo, mid, hi int) {
	len2 := hi - mid
	s.data.Save(mid, len2)
	s.data.Copy(mid-1, hi-1)
	i, j, dest := mid-2, len2-1, hi-2
outer:
	for {
		for count := 0; count < minGallop; {
			if i < lo || j < 0 {
				break outer
			} else if s.data.CompareSaved(j, i) >= 0 {
				s.data.Restore(j, dest)
				j--
				dest--
				count = 0
			} else {
				s.data.Copy(i, dest)
				i--
				dest--
				count++
			}
		}
		// gallop over the run of left-side winners
		next := s.UpperSaved3(lo, i+1, j)
		for i >= next {
			s.data.Copy(i, dest)
			i--
			dest--
		}
		s.data.Restore(j, dest)
		j--
		dest--
	}
	for ; j >= 0; dest-- {
		s.data.Restore(j, dest)
		j--
	}
}

// LowerSaved returns the first slot in [from, to) that does not sort before
// the saved value val.
func (s *TimSorter) LowerSaved(from, to, val int) int {
	n := to - from
	for n > 0 {
		half := int(uint(n) >> 1)
		mid := from + half
		if s.data.CompareSaved(val, mid) > 0 {
			from = mid + 1
			n = n - half - 1
		} else {
			n = half
		}
	}
	return from
}

// UpperSaved returns the first slot in [from, to) that sorts after the saved
// value val.
func (s *TimSorter) UpperSaved(from, to, val int) int {
	n := to - from
	for n > 0 {
		half := int(uint(n) >> 1)
		mid := from + half
		if s.data.CompareSaved(val, mid) < 0 {
			n = half
		} else {
			from = mid + 1
			n = n - half - 1
		}
	}
	return from
}

// LowerSaved3 is LowerSaved with exponential probing from the start of the
// range.
func (s *TimSorter) LowerSaved3(from, to, val int) int {
	f, t := from, from+1
	for t < to {
		if s.data.CompareSaved(val, t) <= 0 {
			return s.LowerSaved(f, t, val)
		}
		delta := t - f
		f = t
		t += delta << 1
	}
	return s.LowerSaved(f, to, val)
}

// UpperSaved3 is UpperSaved with exponential probing from the end of the
// range.
func (s *TimSorter) UpperSaved3(from, to, val int) int {
	f, t := to-1, to
	for f > from {
		if s.data.CompareSaved(val, f) >= 0 {
			return s.UpperSaved(f, t, val)
		}
		delta := t - f
		t = f
		f -= delta << 1
	}
	return s.UpperSaved(from, t, val)
}

var _ RangeSorter = (*TimSorter)(nil)
