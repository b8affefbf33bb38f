package bench

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/go-bond/slotsort"
)

type Algo string

const (
	Intro Algo = "intro"
	Tim   Algo = "tim"
	Merge Algo = "merge"
)

var Algos = []Algo{Intro, Tim, Merge}

// ParseAlgos parses an algorithm name; "all" selects every algorithm.
func ParseAlgos(s string) ([]Algo, error) {
	if s == "all" {
		return slices.Clone(Algos), nil
	}
	a := Algo(s)
	if !slices.Contains(Algos, a) {
		return nil, fmt.Errorf("unknown algorithm %q, expected all or one of %v", s, Algos)
	}
	return []Algo{a}, nil
}

type Result struct {
	Algo     Algo          `structs:"algo"`
	Pattern  Pattern       `structs:"pattern"`
	N        int           `structs:"n"`
	MaxTemp  int           `structs:"max_temp"`
	Compares int64         `structs:"compares"`
	Swaps    int64         `structs:"swaps"`
	Moves    int64         `structs:"moves"`
	Duration time.Duration `structs:"duration"`
	Sorted   bool          `structs:"sorted"`
}

func newSorter(algo Algo, c *Counter) (slotsort.RangeSorter, error) {
	switch algo {
	case Intro:
		return slotsort.NewIntroSorter(c), nil
	case Tim:
		return slotsort.NewTimSorter(c, c.MaxTempSlots()), nil
	case Merge:
		return slotsort.NewInPlaceMergeSorter(c), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", algo)
}

// Run sorts data in place with algo and reports the hook calls it made.
// maxTempSlots only applies to Tim.
func Run(algo Algo, data []int, maxTempSlots int) (Result, error) {
	if maxTempSlots < 0 {
		return Result{}, fmt.Errorf("max temp slots must be >= 0, got %d", maxTempSlots)
	}
	if algo != Tim {
		maxTempSlots = 0
	}

	c := NewCounter(data, maxTempSlots)
	sorter, err := newSorter(algo, c)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	if err := sorter.Sort(0, len(data)); err != nil {
		return Result{}, err
	}
	took := time.Since(start)

	return Result{
		Algo:     algo,
		N:        len(data),
		MaxTemp:  maxTempSlots,
		Compares: c.Compares,
		Swaps:    c.Swaps,
		Moves:    c.Moves(),
		Duration: took,
		Sorted:   slices.IsSorted(data),
	}, nil
}

// RunPattern generates n values in pattern p from seed and runs every algo
// on its own copy.
func RunPattern(algos []Algo, p Pattern, n, maxTempSlots int, seed int64) ([]Result, error) {
	data, err := Generate(p, n, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(algos))
	for _, algo := range algos {
		res, err := Run(algo, slices.Clone(data), maxTempSlots)
		if err != nil {
			return nil, err
		}
		res.Pattern = p
		results = append(results, res)
	}
	return results, nil
}
