package postings

import (
	"strings"

	"github.com/go-bond/slotsort"
	"github.com/go-bond/slotsort/arrays"
	"github.com/go-bond/slotsort/utils"
)

// scratch shared by all buffers; temp slots live only for the duration of a
// sort
var (
	ordPool     = utils.NewSlicePool[uint32](256, 0)
	docPool     = utils.NewSlicePool[uint64](256, 0)
	postingPool = utils.NewSlicePool[Posting](256, 0)
)

// Buffer accumulates (term, doc, freq) triples in parallel arrays and sorts
// them in place by (term, doc). A Buffer is not safe for concurrent use.
type Buffer struct {
	// term dictionary, indexed by ordinal
	terms    []string
	termOrds map[string]uint32
	// rank of each ordinal in term order, set by Sort
	ranks []uint32

	ords  []uint32
	docs  []uint64
	freqs []uint32

	maxTempSlots int
	tmpOrds      []uint32
	tmpDocs      []uint64
	tmpFreqs     []uint32

	sorted bool
}

// NewBuffer returns a buffer whose sort may hold up to maxTempSlots entries
// in temporary storage.
func NewBuffer(maxTempSlots int) *Buffer {
	if maxTempSlots < 0 {
		panic("postings: maxTempSlots must be >= 0")
	}
	return &Buffer{
		termOrds:     make(map[string]uint32),
		maxTempSlots: maxTempSlots,
	}
}

func (b *Buffer) Add(term string, doc uint64, freq uint32) {
	ord, ok := b.termOrds[term]
	if !ok {
		ord = uint32(len(b.terms))
		b.terms = append(b.terms, term)
		b.termOrds[term] = ord
	}
	b.ords = append(b.ords, ord)
	b.docs = append(b.docs, doc)
	b.freqs = append(b.freqs, freq)
	b.sorted = false
}

// AddBytes is Add for a term held in a byte slice. The bytes are copied only
// when the term is new.
func (b *Buffer) AddBytes(term []byte, doc uint64, freq uint32) {
	if ord, ok := b.termOrds[utils.BytesToString(term)]; ok {
		b.ords = append(b.ords, ord)
		b.docs = append(b.docs, doc)
		b.freqs = append(b.freqs, freq)
		b.sorted = false
		return
	}
	b.Add(string(term), doc, freq)
}

func (b *Buffer) Len() int {
	return len(b.docs)
}

func (b *Buffer) NumTerms() int {
	return len(b.terms)
}

// Compare orders entries by term rank, then doc id. Ranks are assigned by Sort.
func (b *Buffer) Compare(i, j int) int {
	return b.compare(b.ranks[b.ords[i]], b.docs[i], b.ords[j], j)
}

func (b *Buffer) compare(rank uint32, doc uint64, ord uint32, j int) int {
	if r := b.ranks[ord]; rank != r {
		if rank < r {
			return -1
		}
		return 1
	}
	switch {
	case doc < b.docs[j]:
		return -1
	case doc > b.docs[j]:
		return 1
	}
	return 0
}

func (b *Buffer) Swap(i, j int) {
	b.ords[i], b.ords[j] = b.ords[j], b.ords[i]
	b.docs[i], b.docs[j] = b.docs[j], b.docs[i]
	b.freqs[i], b.freqs[j] = b.freqs[j], b.freqs[i]
}

func (b *Buffer) Copy(src, dest int) {
	b.ords[dest] = b.ords[src]
	b.docs[dest] = b.docs[src]
	b.freqs[dest] = b.freqs[src]
}

func (b *Buffer) Save(start, length int) {
	copy(b.tmpOrds[:length], b.ords[start:start+length])
	copy(b.tmpDocs[:length], b.docs[start:start+length])
	copy(b.tmpFreqs[:length], b.freqs[start:start+length])
}

func (b *Buffer) Restore(src, dest int) {
	b.ords[dest] = b.tmpOrds[src]
	b.docs[dest] = b.tmpDocs[src]
	b.freqs[dest] = b.tmpFreqs[src]
}

func (b *Buffer) CompareSaved(i, j int) int {
	return b.compare(b.ranks[b.tmpOrds[i]], b.tmpDocs[i], b.ords[j], j)
}

// Sort orders the buffer by (term, doc). Entries with the same term and doc
// keep their insertion order.
func (b *Buffer) Sort() error {
	if b.sorted {
		return nil
	}

	// rank the dictionary, then sort entries by rank without touching strings
	byTerm := utils.ArrayN32(len(b.terms))
	arrays.IntroSort(byTerm, func(x, y uint32) int {
		return strings.Compare(b.terms[x], b.terms[y])
	})
	b.ranks = growUint32(b.ranks, len(b.terms))
	for rank, ord := range byTerm {
		b.ranks[ord] = uint32(rank)
	}

	budget := min(b.maxTempSlots, b.Len())
	b.tmpOrds = ordPool.GetN(budget)
	b.tmpDocs = docPool.GetN(budget)
	b.tmpFreqs = ordPool.GetN(budget)
	defer b.releaseTemp()

	if err := slotsort.NewTimSorter(b, budget).Sort(0, b.Len()); err != nil {
		return err
	}
	b.sorted = true
	return nil
}

func (b *Buffer) releaseTemp() {
	ordPool.Put(b.tmpOrds)
	docPool.Put(b.tmpDocs)
	ordPool.Put(b.tmpFreqs)
	b.tmpOrds, b.tmpDocs, b.tmpFreqs = nil, nil, nil
}

// ForEachTerm sorts the buffer and calls fn once per term, in term order, with
// its postings in doc id order. Repeated (term, doc) pairs are collapsed into
// one posting whose freq is their sum. The postings slice is reused between
// calls and must not be retained by fn.
func (b *Buffer) ForEachTerm(fn func(term string, postings []Posting) error) error {
	if err := b.Sort(); err != nil {
		return err
	}

	postings := postingPool.Get()
	defer func() {
		postingPool.Put(postings)
	}()

	for i := 0; i < b.Len(); {
		ord := b.ords[i]
		postings = postings[:0]
		for ; i < b.Len() && b.ords[i] == ord; i++ {
			if n := len(postings); n > 0 && postings[n-1].DocID == b.docs[i] {
				postings[n-1].Freq += b.freqs[i]
				continue
			}
			postings = append(postings, Posting{DocID: b.docs[i], Freq: b.freqs[i]})
		}
		if err := fn(b.terms[ord], postings); err != nil {
			return err
		}
	}
	return nil
}

// Reset empties the buffer and keeps its allocations.
func (b *Buffer) Reset() {
	clear(b.terms)
	b.terms = b.terms[:0]
	clear(b.termOrds)
	b.ords = b.ords[:0]
	b.docs = b.docs[:0]
	b.freqs = b.freqs[:0]
	b.sorted = false
}

func growUint32(s []uint32, n int) []uint32 {
	if cap(s) < n {
		return make([]uint32, n)
	}
	return s[:n]
}

var _ slotsort.TimInterface = (*Buffer)(nil)
