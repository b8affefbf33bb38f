package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/structs"
	"github.com/go-bond/slotsort/bench"
	"github.com/go-bond/slotsort/serializers"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

var _FlagAlgo = &cli.StringFlag{
	Name:  "algo",
	Usage: "sets algorithm (intro, tim, merge or all)",
	Value: "all",
}

var _FlagPattern = &cli.StringFlag{
	Name:  "pattern",
	Usage: fmt.Sprintf("sets input pattern %v", bench.Patterns),
	Value: string(bench.Random),
}

var _FlagSize = &cli.IntFlag{
	Name:  "size",
	Usage: "sets number of values to sort",
	Value: 100_000,
}

var _FlagSeed = &cli.Int64Flag{
	Name:  "seed",
	Usage: "sets random seed, defaults to the current time",
}

var _FlagJSON = &cli.BoolFlag{
	Name:  "json",
	Usage: "prints results as json",
}

func newBenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "sorts a generated input with each algorithm and reports hook calls",
		Flags: []cli.Flag{
			_FlagAlgo,
			_FlagPattern,
			_FlagSize,
			_FlagMaxTemp,
			_FlagSeed,
			_FlagJSON,
		},
		Action: func(ctx *cli.Context) error {
			algos, err := bench.ParseAlgos(ctx.String(_FlagAlgo.Name))
			if err != nil {
				return err
			}
			pattern, err := bench.ParsePattern(ctx.String(_FlagPattern.Name))
			if err != nil {
				return err
			}
			size := ctx.Int(_FlagSize.Name)
			if size < 0 {
				return fmt.Errorf("size must be >= 0, got %d", size)
			}

			seed := ctx.Int64(_FlagSeed.Name)
			if !ctx.IsSet(_FlagSeed.Name) {
				seed = time.Now().UnixNano()
			}

			results, err := bench.RunPattern(algos, pattern, size, ctx.Int(_FlagMaxTemp.Name), seed)
			if err != nil {
				return err
			}

			if ctx.Bool(_FlagJSON.Name) {
				return printJSON(ctx, results)
			}
			printResults(ctx, results)
			return nil
		},
	}
}

func printJSON(ctx *cli.Context, results []bench.Result) error {
	rows := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		rows = append(rows, structs.Map(res))
	}

	serializer := &serializers.JsonSerializer{Indent: "  "}
	data, err := serializer.Serialize(rows)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(data))
	return err
}

func printResults(ctx *cli.Context, results []bench.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(ctx.App.Writer)
	t.AppendHeader(table.Row{"algo", "pattern", "n", "temp", "compares", "swaps", "moves", "time", "sorted"})
	for _, res := range results {
		t.AppendRow(table.Row{
			res.Algo,
			res.Pattern,
			humanize.Comma(int64(res.N)),
			humanize.Comma(int64(res.MaxTemp)),
			humanize.Comma(res.Compares),
			humanize.Comma(res.Swaps),
			humanize.Comma(res.Moves),
			res.Duration.Round(time.Microsecond),
			res.Sorted,
		})
	}
	t.Render()
}
