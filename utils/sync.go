package utils

import (
	"sync"
)

type SyncPool[T any] interface {
	Get() T
	Put(T)
}

// SlicePool recycles the backing arrays of []E scratch slices. Slices are
// cleared when put back, so a caller never sees another caller's data.
//
// Up to reserve slices are kept outside of the garbage collected sync.Pool,
// which keeps hot buffers alive across GC cycles.
type SlicePool[E any] struct {
	minCap int
	pool   sync.Pool

	mu      sync.Mutex
	reserve [][]E
}

func NewSlicePool[E any](minCap, reserve int) *SlicePool[E] {
	p := &SlicePool[E]{
		minCap:  minCap,
		reserve: make([][]E, 0, reserve),
	}
	p.pool.New = func() any {
		return make([]E, 0, p.minCap)
	}
	for i := 0; i < reserve; i++ {
		p.reserve = append(p.reserve, make([]E, 0, minCap))
	}
	return p
}

// Get returns an empty slice with at least minCap capacity.
func (p *SlicePool[E]) Get() []E {
	p.mu.Lock()
	if n := len(p.reserve); n > 0 {
		s := p.reserve[n-1]
		p.reserve[n-1] = nil
		p.reserve = p.reserve[:n-1]
		p.mu.Unlock()
		return s
	}
	p.mu.Unlock()

	return p.pool.Get().([]E)
}

// GetN returns a zeroed slice of length n.
func (p *SlicePool[E]) GetN(n int) []E {
	s := p.Get()
	if cap(s) < n {
		p.Put(s)
		return make([]E, n)
	}
	return s[:n]
}

func (p *SlicePool[E]) Put(s []E) {
	if cap(s) == 0 {
		return
	}
	clear(s[:cap(s)])
	s = s[:0]

	p.mu.Lock()
	if len(p.reserve) < cap(p.reserve) {
		p.reserve = append(p.reserve, s)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.pool.Put(s)
}

var _ SyncPool[[]byte] = (*SlicePool[byte])(nil)
