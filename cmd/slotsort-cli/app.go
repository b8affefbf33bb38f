package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-bond/slotsort/postings"
	"github.com/go-bond/slotsort/serializers"
	"github.com/go-bond/slotsort/utils"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var _FlagLogLevel = &cli.StringFlag{
	Name:    "log-level",
	Usage:   "sets log level (debug, info, warn, error)",
	Value:   "warn",
	EnvVars: []string{"SLOTSORT_LOG_LEVEL"},
}

var _FlagDB = &cli.StringFlag{
	Name:     "db",
	Usage:    "sets postings index dir",
	EnvVars:  []string{"SLOTSORT_DB"},
	Required: true,
}

var _FlagSerializer = &cli.StringFlag{
	Name:    "serializer",
	Usage:   fmt.Sprintf("sets flush manifest encoding %v", serializers.Names),
	Value:   serializers.CBOR,
	EnvVars: []string{"SLOTSORT_SERIALIZER"},
}

var _FlagShards = &cli.IntFlag{
	Name:  "shards",
	Usage: "sets number of buffers sorted concurrently",
	Value: postings.DefaultShards,
}

var _FlagMaxTemp = &cli.IntFlag{
	Name:  "max-temp",
	Usage: "sets temporary slots available to timsort",
	Value: postings.DefaultMaxTempSlots,
}

// NewApp builds the cli writing results to out.
func NewApp(out io.Writer) *cli.App {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	return &cli.App{
		Name: "slotsort-cli",
		Usage: "The cli for slotsort sorters and postings indexes.\n\n" +
			"slotsort-cli bench --algo all --pattern organpipe --size 100000\n" +
			"slotsort-cli index --db ./index docs.txt\n" +
			"slotsort-cli lookup --db ./index sorting\n" +
			"slotsort-cli terms --db ./index --prefix sort",
		Writer: out,
		Flags: []cli.Flag{
			_FlagLogLevel,
		},
		Before: func(ctx *cli.Context) error {
			level, err := logrus.ParseLevel(ctx.String(_FlagLogLevel.Name))
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			newBenchCommand(),
			newIndexCommand(logger),
			newLookupCommand(logger),
			newTermsCommand(logger),
			newFlushesCommand(logger),
		},
	}
}

func openIndex(ctx *cli.Context, logger logrus.FieldLogger) (*postings.Index, error) {
	dir, err := utils.PathExpand(ctx.String(_FlagDB.Name))
	if err != nil {
		return nil, err
	}

	serializer, err := serializers.New(ctx.String(_FlagSerializer.Name))
	if err != nil {
		return nil, err
	}

	opts := postings.DefaultOptions()
	opts.Logger = logger.WithField("db", dir)
	opts.Serializer = serializer
	if ctx.IsSet(_FlagShards.Name) {
		opts.Shards = ctx.Int(_FlagShards.Name)
	}
	if ctx.IsSet(_FlagMaxTemp.Name) {
		opts.MaxTempSlots = ctx.Int(_FlagMaxTemp.Name)
	}
	return postings.Open(dir, opts)
}
