package bench

import (
	"cmp"

	"github.com/go-bond/slotsort"
)

// Counter sorts a []int and counts every hook call. It implements all hook
// sets so one type can drive every sorter.
type Counter struct {
	Data []int

	tmp   []int
	pivot int

	Compares int64
	Swaps    int64
	Copies   int64
	Saves    int64
	Restores int64
}

func NewCounter(data []int, maxTempSlots int) *Counter {
	return &Counter{
		Data: data,
		tmp:  make([]int, maxTempSlots),
	}
}

func (c *Counter) Compare(i, j int) int {
	c.Compares++
	return cmp.Compare(c.Data[i], c.Data[j])
}

func (c *Counter) Swap(i, j int) {
	c.Swaps++
	c.Data[i], c.Data[j] = c.Data[j], c.Data[i]
}

func (c *Counter) SetPivot(i int) {
	c.pivot = c.Data[i]
}

func (c *Counter) ComparePivot(j int) int {
	c.Compares++
	return cmp.Compare(c.pivot, c.Data[j])
}

func (c *Counter) Copy(src, dest int) {
	c.Copies++
	c.Data[dest] = c.Data[src]
}

func (c *Counter) Save(start, length int) {
	c.Saves += int64(length)
	copy(c.tmp[:length], c.Data[start:start+length])
}

func (c *Counter) Restore(src, dest int) {
	c.Restores++
	c.Data[dest] = c.tmp[src]
}

func (c *Counter) CompareSaved(i, j int) int {
	c.Compares++
	return cmp.Compare(c.tmp[i], c.Data[j])
}

// Moves is the number of single slot writes outside of swaps.
func (c *Counter) Moves() int64 {
	return c.Copies + c.Saves + c.Restores
}

func (c *Counter) MaxTempSlots() int {
	return len(c.tmp)
}

var _ slotsort.TimInterface = (*Counter)(nil)
var _ slotsort.IntroInterface = (*Counter)(nil)
