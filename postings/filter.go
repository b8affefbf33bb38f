package postings

import (
	"bytes"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// TermFilter is a bloom filter over every term written to an index. A
// negative answer means the term has never been flushed.
type TermFilter struct {
	filter     *bloom.BloomFilter
	hasChanges bool

	mutex sync.RWMutex
}

func NewTermFilter(n uint, fp float64) *TermFilter {
	return &TermFilter{
		filter: bloom.NewWithEstimates(n, fp),
	}
}

func (f *TermFilter) Add(term string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.hasChanges = !f.filter.TestOrAddString(term) || f.hasChanges
}

func (f *TermFilter) MayContain(term string) bool {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.filter.TestString(term)
}

// Load replaces the filter with the one stored in r, if any.
func (f *TermFilter) Load(r pebble.Reader) error {
	data, closer, err := r.Get(filterKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read term filter")
	}
	defer closer.Close()

	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "read term filter")
	}
	defer zr.Close()

	filter := bloom.New(1, 1)
	if _, err := filter.ReadFrom(zr); err != nil {
		return errors.Wrap(err, "decode term filter")
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.filter = filter
	f.hasChanges = false
	return nil
}

// Save writes the filter to w when it has changed since the last Save or Load.
func (f *TermFilter) Save(w pebble.Writer) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if !f.hasChanges {
		return nil
	}

	var buff bytes.Buffer
	zw, err := zstd.NewWriter(&buff)
	if err != nil {
		return errors.Wrap(err, "write term filter")
	}
	if _, err := f.filter.WriteTo(zw); err != nil {
		_ = zw.Close()
		return errors.Wrap(err, "encode term filter")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "encode term filter")
	}

	if err := w.Set(filterKey, buff.Bytes(), nil); err != nil {
		return errors.Wrap(err, "write term filter")
	}
	f.hasChanges = false
	return nil
}

func (f *TermFilter) markChanged() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.hasChanges = true
}
