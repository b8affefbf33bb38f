package postings

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-bond/slotsort/arrays"
	"github.com/go-bond/slotsort/serializers"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Index is a term -> postings store on pebble. Every Flush merges its blocks
// into the existing postings of each term. Index is safe for concurrent use.
type Index struct {
	db     *pebble.DB
	opts   *Options
	log    logrus.FieldLogger
	filter *TermFilter

	manifests *serializers.AnyWrapper[*FlushInfo]

	// serializes flushes so filter snapshots are committed in order
	flushMu sync.Mutex

	closeMu sync.RWMutex
	closed  bool
}

func Open(dirname string, opts *Options) (*Index, error) {
	opts = opts.withDefaults()

	db, err := pebble.Open(dirname, pebbleOptions(opts))
	if err != nil {
		return nil, errors.Wrapf(err, "open index at %s", dirname)
	}

	filter := NewTermFilter(opts.FilterExpectedTerms, opts.FilterFalsePositiveRate)
	if err := filter.Load(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	opts.Logger.WithField("dir", dirname).Debug("postings index opened")

	return &Index{
		db:     db,
		opts:   opts,
		log:    opts.Logger,
		filter: filter,

		manifests: &serializers.AnyWrapper[*FlushInfo]{Serializer: opts.Serializer},
	}, nil
}

// NewShardedBuffer returns an empty buffer configured from the index options.
func (idx *Index) NewShardedBuffer() *ShardedBuffer {
	return NewShardedBuffer(idx.opts.Shards, idx.opts.MaxTempSlots)
}

// Flush sorts buf, merges the postings of every term into the index and
// records a manifest, all in one atomic batch. buf is reset on success.
func (idx *Index) Flush(ctx context.Context, buf *ShardedBuffer) (FlushInfo, error) {
	idx.closeMu.RLock()
	defer idx.closeMu.RUnlock()
	if idx.closed {
		return FlushInfo{}, ErrClosed
	}

	idx.flushMu.Lock()
	defer idx.flushMu.Unlock()

	start := time.Now()
	if err := buf.SortAll(ctx); err != nil {
		return FlushInfo{}, errors.Wrap(err, "sort shards")
	}

	info := FlushInfo{
		ID:     uuid.New(),
		Shards: buf.NumOfShards(),
	}

	batch := idx.db.NewBatch()
	defer batch.Close()

	var keyBuff, blockBuff []byte
	for i := 0; i < buf.NumOfShards(); i++ {
		err := buf.Shard(i).ForEachTerm(func(term string, postings []Posting) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			keyBuff = termKey(keyBuff[:0], term)
			blockBuff = EncodeBlock(blockBuff[:0], postings, idx.opts.CompressThreshold)
			if err := batch.Merge(keyBuff, blockBuff, nil); err != nil {
				return errors.Wrapf(err, "merge term %q", term)
			}

			idx.filter.Add(term)
			info.Terms++
			info.Postings += len(postings)
			return nil
		})
		if err != nil {
			return FlushInfo{}, err
		}
	}

	info.CreatedAt = time.Now().UTC()
	data, err := idx.manifests.Serialize(&info)
	if err != nil {
		return FlushInfo{}, errors.Wrap(err, "serialize flush info")
	}
	if err := batch.Set(flushKey(info.ID), data, nil); err != nil {
		return FlushInfo{}, errors.Wrap(err, "write flush info")
	}

	if err := idx.filter.Save(batch); err != nil {
		return FlushInfo{}, err
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		idx.filter.markChanged()
		return FlushInfo{}, errors.Wrap(err, "commit flush")
	}
	buf.Reset()

	idx.log.WithFields(logrus.Fields{
		"id":       info.ID,
		"terms":    info.Terms,
		"postings": info.Postings,
		"shards":   info.Shards,
		"took":     time.Since(start),
	}).Info("postings flushed")

	return info, nil
}

// Delete marks docIDs as removed from the postings of term.
func (idx *Index) Delete(ctx context.Context, term string, docIDs ...uint64) error {
	idx.closeMu.RLock()
	defer idx.closeMu.RUnlock()
	if idx.closed {
		return ErrClosed
	}
	if len(docIDs) == 0 {
		return ctx.Err()
	}

	ids := append([]uint64(nil), docIDs...)
	arrays.SortOrdered(ids)

	markers := make([]Posting, 0, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		markers = append(markers, Posting{DocID: id})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	block := EncodeBlock(nil, markers, idx.opts.CompressThreshold)
	if err := idx.db.Merge(termKey(nil, term), block, pebble.Sync); err != nil {
		return errors.Wrapf(err, "delete from term %q", term)
	}
	return nil
}

// Lookup returns the live postings of term in doc id order.
func (idx *Index) Lookup(ctx context.Context, term string) ([]Posting, error) {
	idx.closeMu.RLock()
	defer idx.closeMu.RUnlock()
	if idx.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !idx.filter.MayContain(term) {
		return nil, nil
	}

	data, closer, err := idx.db.Get(termKey(nil, term))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get term %q", term)
	}
	defer closer.Close()

	postings, err := DecodeBlock(nil, data)
	if err != nil {
		return nil, errors.Wrapf(err, "term %q", term)
	}

	live := postings[:0]
	for _, p := range postings {
		if p.Freq != 0 {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return nil, nil
	}
	return live, nil
}

// Terms returns every indexed term starting with prefix, sorted.
func (idx *Index) Terms(ctx context.Context, prefix string) ([]string, error) {
	idx.closeMu.RLock()
	defer idx.closeMu.RUnlock()
	if idx.closed {
		return nil, ErrClosed
	}

	lower := termKey(nil, prefix)
	iter, err := idx.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(lower),
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate terms")
	}

	var terms []string
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			_ = iter.Close()
			return nil, err
		}

		term, err := termFromKey(iter.Key())
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		terms = append(terms, string(term))
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "iterate terms")
	}
	return terms, nil
}

// Flushes returns the manifests of all committed flushes, oldest first.
func (idx *Index) Flushes(ctx context.Context) ([]FlushInfo, error) {
	idx.closeMu.RLock()
	defer idx.closeMu.RUnlock()
	if idx.closed {
		return nil, ErrClosed
	}

	iter, err := idx.db.NewIter(&pebble.IterOptions{
		LowerBound: flushKeyLowerBound,
		UpperBound: flushKeyUpperBound,
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate flushes")
	}

	var flushes []FlushInfo
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			_ = iter.Close()
			return nil, err
		}

		var info FlushInfo
		if err := idx.manifests.Deserialize(iter.Value(), &info); err != nil {
			_ = iter.Close()
			return nil, errors.Wrap(err, "deserialize flush info")
		}
		flushes = append(flushes, info)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "iterate flushes")
	}

	arrays.TimSort(flushes, func(a, b FlushInfo) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return flushes, nil
}

func (idx *Index) Close() error {
	idx.closeMu.Lock()
	defer idx.closeMu.Unlock()
	if idx.closed {
		return ErrClosed
	}
	idx.closed = true

	if err := idx.db.Close(); err != nil {
		return errors.Wrap(err, "close index")
	}
	idx.log.Debug("postings index closed")
	return nil
}
