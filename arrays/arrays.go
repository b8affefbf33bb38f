// Package arrays binds the slotsort hooks to Go slices.
package arrays

import (
	"cmp"
	"sort"

	"github.com/go-bond/slotsort"
	"github.com/go-bond/slotsort/utils"
	"golang.org/x/exp/constraints"
)

// IntroSorter sorts a slice with slotsort.IntroSorter.
type IntroSorter[T any] struct {
	arr   []T
	cmp   func(a, b T) int
	pivot T
}

func NewIntroSorter[T any](arr []T, cmp func(a, b T) int) *IntroSorter[T] {
	return &IntroSorter[T]{arr: arr, cmp: cmp}
}

func (s *IntroSorter[T]) Compare(i, j int) int {
	return s.cmp(s.arr[i], s.arr[j])
}

func (s *IntroSorter[T]) Swap(i, j int) {
	s.arr[i], s.arr[j] = s.arr[j], s.arr[i]
}

func (s *IntroSorter[T]) SetPivot(i int) {
	s.pivot = s.arr[i]
}

func (s *IntroSorter[T]) ComparePivot(j int) int {
	return s.cmp(s.pivot, s.arr[j])
}

func (s *IntroSorter[T]) Sort(from, to int) error {
	return slotsort.NewIntroSorter(s).Sort(from, to)
}

// TimSorter sorts a slice with slotsort.TimSorter and a temporary slice of
// maxTempSlots values.
type TimSorter[T any] struct {
	arr []T
	cmp func(a, b T) int
	tmp []T
}

func NewTimSorter[T any](arr []T, cmp func(a, b T) int, maxTempSlots int) *TimSorter[T] {
	s := &TimSorter[T]{arr: arr, cmp: cmp}
	if maxTempSlots > 0 {
		s.tmp = make([]T, maxTempSlots)
	}
	return s
}

func (s *TimSorter[T]) Compare(i, j int) int {
	return s.cmp(s.arr[i], s.arr[j])
}

func (s *TimSorter[T]) Swap(i, j int) {
	s.arr[i], s.arr[j] = s.arr[j], s.arr[i]
}

func (s *TimSorter[T]) Copy(src, dest int) {
	s.arr[dest] = s.arr[src]
}

func (s *TimSorter[T]) Save(start, length int) {
	copy(s.tmp[:length], s.arr[start:start+length])
}

func (s *TimSorter[T]) Restore(src, dest int) {
	s.arr[dest] = s.tmp[src]
}

func (s *TimSorter[T]) CompareSaved(i, j int) int {
	return s.cmp(s.tmp[i], s.arr[j])
}

func (s *TimSorter[T]) Sort(from, to int) error {
	err := slotsort.NewTimSorter(s, len(s.tmp)).Sort(from, to)
	// drop references held by the temp slice
	clear(s.tmp)
	return err
}

// InPlaceMergeSorter sorts a slice with slotsort.InPlaceMergeSorter.
type InPlaceMergeSorter[T any] struct {
	arr []T
	cmp func(a, b T) int
}

func NewInPlaceMergeSorter[T any](arr []T, cmp func(a, b T) int) *InPlaceMergeSorter[T] {
	return &InPlaceMergeSorter[T]{arr: arr, cmp: cmp}
}

func (s *InPlaceMergeSorter[T]) Compare(i, j int) int {
	return s.cmp(s.arr[i], s.arr[j])
}

func (s *InPlaceMergeSorter[T]) Swap(i, j int) {
	s.arr[i], s.arr[j] = s.arr[j], s.arr[i]
}

func (s *InPlaceMergeSorter[T]) Sort(from, to int) error {
	return slotsort.NewInPlaceMergeSorter(s).Sort(from, to)
}

// TempSlots is the temporary storage budget TimSort grants for a slice of
// length n.
func TempSlots(n int) int {
	return n / 64
}

// IntroSort sorts s with introsort. It is not stable.
func IntroSort[T any](s []T, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}
	_ = IntroSortRange(s, 0, len(s), cmp)
}

func IntroSortRange[T any](s []T, from, to int, cmp func(a, b T) int) error {
	return NewIntroSorter(s, cmp).Sort(from, to)
}

// TimSort sorts s with a stable Timsort using len(s)/64 temporary slots.
func TimSort[T any](s []T, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}
	_ = TimSortRange(s, 0, len(s), cmp)
}

func TimSortRange[T any](s []T, from, to int, cmp func(a, b T) int) error {
	return NewTimSorter(s, cmp, TempSlots(len(s))).Sort(from, to)
}

// InPlaceMergeSort sorts s with a stable merge sort that allocates nothing.
func InPlaceMergeSort[T any](s []T, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}
	_ = InPlaceMergeSortRange(s, 0, len(s), cmp)
}

func InPlaceMergeSortRange[T any](s []T, from, to int, cmp func(a, b T) int) error {
	return NewInPlaceMergeSorter(s, cmp).Sort(from, to)
}

// SortOrdered sorts s in ascending order with introsort.
func SortOrdered[T constraints.Ordered](s []T) {
	IntroSort(s, cmp.Compare[T])
}

// Stable sorts data stably, using only its Less and Swap methods.
func Stable(data sort.Interface) {
	n := data.Len()
	if n <= 1 {
		return
	}
	shim := &utils.SortShim{
		Length: n,
		LessFn: data.Less,
		SwapFn: data.Swap,
	}
	_ = slotsort.NewInPlaceMergeSorter(shim).Sort(0, n)
}

var (
	_ slotsort.IntroInterface = (*IntroSorter[int])(nil)
	_ slotsort.TimInterface   = (*TimSorter[int])(nil)
	_ slotsort.Interface      = (*InPlaceMergeSorter[int])(nil)
)
