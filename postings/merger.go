package postings

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/go-bond/slotsort/arrays"
)

const MergerName = "slotsort.postings"

// newPostingsMerger returns the merge operator for term keys. Operands are
// posting blocks; merging them yields one block holding, per doc id, the
// posting of the newest operand.
func newPostingsMerger(compressThreshold int) *pebble.Merger {
	return &pebble.Merger{
		Name: MergerName,
		Merge: func(key, value []byte) (pebble.ValueMerger, error) {
			m := &postingsValueMerger{compressThreshold: compressThreshold}
			if err := m.MergeNewer(value); err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

type postingsValueMerger struct {
	compressThreshold int

	// decoded operands, oldest first; each is a run sorted by doc id
	blocks [][]Posting
	count  int
}

func (m *postingsValueMerger) MergeNewer(value []byte) error {
	block, err := DecodeBlock(nil, value)
	if err != nil {
		return err
	}
	m.blocks = append(m.blocks, block)
	m.count += len(block)
	return nil
}

func (m *postingsValueMerger) MergeOlder(value []byte) error {
	block, err := DecodeBlock(nil, value)
	if err != nil {
		return err
	}
	m.blocks = append(m.blocks, nil)
	copy(m.blocks[1:], m.blocks)
	m.blocks[0] = block
	m.count += len(block)
	return nil
}

func (m *postingsValueMerger) Finish(includesBase bool) ([]byte, io.Closer, error) {
	merged := mergePostings(m.blocks, m.count, includesBase)
	return EncodeBlock(nil, merged, m.compressThreshold), nil, nil
}

// mergePostings concatenates blocks, oldest first, and stable sorts them by
// doc id. Each block is already a sorted run, so the sort only merges. For a
// repeated doc id the newest posting wins. Deletion markers are dropped once
// no older operand can be shadowed by them.
func mergePostings(blocks [][]Posting, count int, dropDeleted bool) []Posting {
	all := make([]Posting, 0, count)
	for _, block := range blocks {
		all = append(all, block...)
	}
	if len(blocks) > 1 {
		arrays.TimSort(all, compareDocID)
	}

	out := all[:0]
	for i, p := range all {
		if i+1 < len(all) && all[i+1].DocID == p.DocID {
			continue
		}
		if dropDeleted && p.Freq == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

var _ pebble.ValueMerger = (*postingsValueMerger)(nil)
