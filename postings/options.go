package postings

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/go-bond/slotsort/serializers"
	"github.com/sirupsen/logrus"
)

const (
	DefaultShards                  = 4
	DefaultMaxTempSlots            = 1 << 10
	DefaultCompressThreshold       = 512
	DefaultFilterExpectedTerms     = 1 << 20
	DefaultFilterFalsePositiveRate = 0.01
)

type Options struct {
	PebbleOptions *pebble.Options

	// Serializer encodes flush manifests.
	Serializer serializers.Serializer[any]

	Logger logrus.FieldLogger

	// Shards is the number of buffers NewShardedBuffer creates.
	Shards int
	// MaxTempSlots bounds the temporary storage of each shard sort.
	MaxTempSlots int
	// CompressThreshold is the block payload size from which blocks are zstd
	// compressed. Zero disables compression.
	CompressThreshold int

	FilterExpectedTerms     uint
	FilterFalsePositiveRate float64
}

func DefaultOptions() *Options {
	opts := Options{
		Serializer:              &serializers.CBORSerializer{},
		Logger:                  discardLogger(),
		Shards:                  DefaultShards,
		MaxTempSlots:            DefaultMaxTempSlots,
		CompressThreshold:       DefaultCompressThreshold,
		FilterExpectedTerms:     DefaultFilterExpectedTerms,
		FilterFalsePositiveRate: DefaultFilterFalsePositiveRate,
	}

	if opts.PebbleOptions == nil {
		opts.PebbleOptions = DefaultPebbleOptions()
	}

	return &opts
}

func DefaultPebbleOptions() *pebble.Options {
	opts := &pebble.Options{
		FS:                          vfs.Default,
		L0CompactionThreshold:       2,
		L0StopWritesThreshold:       1000,
		LBaseMaxBytes:               64 << 20, // 64 MB
		MemTableSize:                32 << 20, // 32 MB
		MemTableStopWritesThreshold: 4,
		FormatMajorVersion:          pebble.FormatNewest,
	}
	opts.EnsureDefaults()

	for i := range opts.Levels {
		l := &opts.Levels[i]
		l.BlockSize = 32 << 10 // 32 KB
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
	}

	// EnsureDefaults binds the event hooks to pebble's default logger. Leave
	// them unset so Open can bind them to Options.Logger.
	opts.Logger = nil
	opts.EventListener = nil

	return opts
}

// pebbleOptions returns the pebble options Open uses: a copy of
// o.PebbleOptions with the postings merger installed and logging and event
// hooks routed to o.Logger.
func pebbleOptions(o *Options) *pebble.Options {
	opts := o.PebbleOptions.Clone()
	opts.Merger = newPostingsMerger(o.CompressThreshold)
	opts.Logger = o.Logger
	if opts.EventListener != nil {
		l := *opts.EventListener
		opts.EventListener = &l
	}
	opts.EnsureDefaults()
	return opts
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// withDefaults fills the zero fields of o from DefaultOptions.
func (o *Options) withDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}

	opts := *o
	if opts.PebbleOptions == nil {
		opts.PebbleOptions = DefaultPebbleOptions()
	}
	if opts.Serializer == nil {
		opts.Serializer = &serializers.CBORSerializer{}
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Shards <= 0 {
		opts.Shards = DefaultShards
	}
	if opts.MaxTempSlots < 0 {
		opts.MaxTempSlots = 0
	}
	if opts.FilterExpectedTerms == 0 {
		opts.FilterExpectedTerms = DefaultFilterExpectedTerms
	}
	if opts.FilterFalsePositiveRate <= 0 || opts.FilterFalsePositiveRate >= 1 {
		opts.FilterFalsePositiveRate = DefaultFilterFalsePositiveRate
	}
	return &opts
}
