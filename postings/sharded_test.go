package postings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedBuffer_RoutesTermsConsistently(t *testing.T) {
	sb := NewShardedBuffer(4, 8)
	require.Equal(t, 4, sb.NumOfShards())

	for doc := uint64(0); doc < 3; doc++ {
		for i := 0; i < 500; i++ {
			sb.Add(fmt.Sprintf("term-%d", i), doc, 1)
		}
	}
	require.Equal(t, 1500, sb.Len())

	seen := map[string]int{}
	for i := 0; i < sb.NumOfShards(); i++ {
		shard := sb.Shard(i)
		assert.Positive(t, shard.NumTerms(), "shard %d is empty", i)

		err := shard.ForEachTerm(func(term string, postings []Posting) error {
			_, dup := seen[term]
			assert.False(t, dup, "term %s in more than one shard", term)
			seen[term] = i
			assert.Equal(t, i, sb.ShardOf(term))
			assert.Len(t, postings, 3)
			return nil
		})
		require.NoError(t, err)
	}
	assert.Len(t, seen, 500)
}

func TestShardedBuffer_SortAll(t *testing.T) {
	sb := NewShardedBuffer(3, 0)
	for i := 0; i < 300; i++ {
		sb.Add(fmt.Sprintf("t%d", i%17), uint64(300-i), 1)
	}
	require.NoError(t, sb.SortAll(context.Background()))

	for i := 0; i < sb.NumOfShards(); i++ {
		shard := sb.Shard(i)
		require.True(t, shard.sorted)
		for j := 1; j < shard.Len(); j++ {
			assert.LessOrEqual(t, shard.Compare(j-1, j), 0)
		}
	}

	sb.Reset()
	assert.Equal(t, 0, sb.Len())
}

func TestShardedBuffer_SortAllCanceled(t *testing.T) {
	sb := NewShardedBuffer(2, 0)
	sb.Add("a", 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sb.SortAll(ctx), context.Canceled)
}

func TestShardedBuffer_AtLeastOneShard(t *testing.T) {
	sb := NewShardedBuffer(0, 0)
	assert.Equal(t, 1, sb.NumOfShards())
	assert.Equal(t, 0, sb.ShardOf("anything"))
}
