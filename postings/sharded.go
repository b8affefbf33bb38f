package postings

import (
	"context"
	"runtime"

	"github.com/lithammer/go-jump-consistent-hash"
	"golang.org/x/sync/errgroup"
)

// ShardedBuffer spreads terms over independent Buffers with jump consistent
// hashing, so that every posting of a term lands in the same shard and
// shards can be sorted concurrently.
type ShardedBuffer struct {
	shards []*Buffer
	hasher jump.KeyHasher
}

func NewShardedBuffer(numOfShards, maxTempSlots int) *ShardedBuffer {
	if numOfShards < 1 {
		numOfShards = 1
	}
	shards := make([]*Buffer, 0, numOfShards)
	for i := 0; i < numOfShards; i++ {
		shards = append(shards, NewBuffer(maxTempSlots))
	}
	return &ShardedBuffer{
		shards: shards,
		hasher: jump.NewCRC64(),
	}
}

func (s *ShardedBuffer) Add(term string, doc uint64, freq uint32) {
	s.shards[s.ShardOf(term)].Add(term, doc, freq)
}

// ShardOf returns the shard a term is routed to.
func (s *ShardedBuffer) ShardOf(term string) int {
	return int(jump.HashString(term, int32(len(s.shards)), s.hasher))
}

func (s *ShardedBuffer) NumOfShards() int {
	return len(s.shards)
}

func (s *ShardedBuffer) Shard(i int) *Buffer {
	return s.shards[i]
}

func (s *ShardedBuffer) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// SortAll sorts every shard, running up to GOMAXPROCS sorts at a time.
func (s *ShardedBuffer) SortAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, shard := range s.shards {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return shard.Sort()
		})
	}
	return g.Wait()
}

func (s *ShardedBuffer) Reset() {
	for _, shard := range s.shards {
		shard.Reset()
	}
}
