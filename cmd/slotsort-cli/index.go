package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/fatih/structs"
	"github.com/go-bond/slotsort/arrays"
	"github.com/go-bond/slotsort/postings"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var _FlagFirstDoc = &cli.Uint64Flag{
	Name:  "first-doc",
	Usage: "sets doc id of the first indexed line",
	Value: 1,
}

var _FlagPrefix = &cli.StringFlag{
	Name:  "prefix",
	Usage: "sets term prefix",
}

func newIndexCommand(logger logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "indexes every non-empty line of the given files as one document",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			_FlagDB,
			_FlagSerializer,
			_FlagShards,
			_FlagMaxTemp,
			_FlagFirstDoc,
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() == 0 {
				return fmt.Errorf("no input files")
			}

			idx, err := openIndex(ctx, logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			buf := idx.NewShardedBuffer()
			doc := ctx.Uint64(_FlagFirstDoc.Name)
			for _, path := range ctx.Args().Slice() {
				doc, err = indexFile(buf, path, doc)
				if err != nil {
					return err
				}
			}

			info, err := idx.Flush(ctx.Context, buf)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(ctx.App.Writer, "flushed %s terms, %s postings (%s)\n",
				humanize.Comma(int64(info.Terms)), humanize.Comma(int64(info.Postings)), info.ID)
			return nil
		},
	}
}

// indexFile adds every non-empty line of path as a document, numbering
// documents from doc. It returns the next free doc id.
func indexFile(buf *postings.ShardedBuffer, path string, doc uint64) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return doc, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tokens := tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		for _, token := range tokens {
			buf.Add(token, doc, 1)
		}
		doc++
	}
	return doc, scanner.Err()
}

func tokenize(line string) []string {
	return strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func newLookupCommand(logger logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "prints the postings of a term",
		ArgsUsage: "TERM",
		Flags: []cli.Flag{
			_FlagDB,
			_FlagSerializer,
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return fmt.Errorf("expected exactly one term")
			}

			idx, err := openIndex(ctx, logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			list, err := idx.Lookup(ctx.Context, strings.ToLower(ctx.Args().First()))
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(ctx.App.Writer)
			t.AppendHeader(table.Row{"doc", "freq"})
			for _, p := range list {
				t.AppendRow(table.Row{p.DocID, p.Freq})
			}
			t.Render()
			return nil
		},
	}
}

func newTermsCommand(logger logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:  "terms",
		Usage: "lists indexed terms",
		Flags: []cli.Flag{
			_FlagDB,
			_FlagSerializer,
			_FlagPrefix,
		},
		Action: func(ctx *cli.Context) error {
			idx, err := openIndex(ctx, logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			terms, err := idx.Terms(ctx.Context, ctx.String(_FlagPrefix.Name))
			if err != nil {
				return err
			}
			for _, term := range terms {
				_, _ = fmt.Fprintln(ctx.App.Writer, term)
			}
			return nil
		},
	}
}

func newFlushesCommand(logger logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:  "flushes",
		Usage: "lists committed flushes, oldest first",
		Flags: []cli.Flag{
			_FlagDB,
			_FlagSerializer,
		},
		Action: func(ctx *cli.Context) error {
			idx, err := openIndex(ctx, logger)
			if err != nil {
				return err
			}
			defer idx.Close()

			flushes, err := idx.Flushes(ctx.Context)
			if err != nil {
				return err
			}
			for _, info := range flushes {
				_, _ = fmt.Fprintln(ctx.App.Writer, formatFlush(info))
			}
			return nil
		},
	}
}

// formatFlush renders a manifest as sorted key=value pairs.
func formatFlush(info postings.FlushInfo) string {
	fields := structs.Map(info)
	fields["created_at"] = humanize.Time(info.CreatedAt)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	arrays.SortOrdered(keys)

	var sb strings.Builder
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		_, _ = fmt.Fprintf(&sb, "%s=%v", key, fields[key])
	}
	return sb.String()
}
