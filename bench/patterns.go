// Package bench measures the sorters on adversarial inputs by counting the
// hook calls each one makes.
package bench

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/go-bond/slotsort/utils"
)

type Pattern string

const (
	Random    Pattern = "random"
	Sorted    Pattern = "sorted"
	Reversed  Pattern = "reversed"
	OrganPipe Pattern = "organpipe"
	Runs      Pattern = "runs"
	Dups      Pattern = "dups"
	Sawtooth  Pattern = "sawtooth"
)

var Patterns = []Pattern{Random, Sorted, Reversed, OrganPipe, Runs, Dups, Sawtooth}

func ParsePattern(s string) (Pattern, error) {
	p := Pattern(s)
	if !slices.Contains(Patterns, p) {
		return "", fmt.Errorf("unknown pattern %q, expected one of %v", s, Patterns)
	}
	return p, nil
}

// Generate returns n values laid out in pattern p.
func Generate(p Pattern, n int, rnd *rand.Rand) ([]int, error) {
	data := make([]int, n)
	switch p {
	case Random:
		for i := range data {
			data[i] = rnd.Intn(n + 1)
		}
	case Sorted:
		data = utils.ArrayN(n)
	case Reversed:
		for i := range data {
			data[i] = n - i
		}
	case OrganPipe:
		for i := range data {
			data[i] = min(i, n-1-i)
		}
	case Runs:
		// ascending runs of random length, so Timsort finds long natural runs
		for i := 0; i < n; {
			runLen := 1 + rnd.Intn(256)
			start := rnd.Intn(n + 1)
			for j := 0; j < runLen && i < n; j++ {
				data[i] = start + j
				i++
			}
		}
	case Dups:
		for i := range data {
			data[i] = rnd.Intn(8)
		}
	case Sawtooth:
		for i := range data {
			data[i] = i % 100
		}
	default:
		return nil, fmt.Errorf("unknown pattern %q", p)
	}
	return data, nil
}
