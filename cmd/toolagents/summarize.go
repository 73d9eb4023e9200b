package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tailored-agentic-units/toolagents/dataset"
	"github.com/tailored-agentic-units/toolagents/tabular"
)

const stdinName = "-"

type summarizeFlags struct {
	json       bool
	stdin      bool
	categories []string
}

type namedReport struct {
	Name   string          `json:"name"`
	Report *tabular.Report `json:"report"`
}

func newSummarizeCmd(opts *options) *cobra.Command {
	flags := &summarizeFlags{}

	cmd := &cobra.Command{
		Use:   "summarize [file|pattern]...",
		Short: "Summarize CSV files without calling a model",
		Long: `Prints head, describe, null counts and top value counts for each file.
Arguments are names or doublestar patterns relative to the dataset directory;
with no arguments every CSV file in it is summarized.`,
		Example: `  toolagents summarize sample.csv
  toolagents summarize --dir data 'sales/**/*.csv'
  cat data.csv | toolagents summarize --stdin --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var parseOpts []tabular.Option
			if len(flags.categories) > 0 {
				parseOpts = append(parseOpts, tabular.AsCategory(flags.categories...))
			}

			var reports []namedReport
			if flags.stdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				report, err := tabular.Summarize(string(data), parseOpts...)
				if err != nil {
					return err
				}
				reports = []namedReport{{Name: stdinName, Report: report}}
			} else {
				store := dataset.NewStore(&opts.dataset)
				names, err := resolveNames(ctx, store, args)
				if err != nil {
					return err
				}
				reports, err = summarizeAll(ctx, store, names, parseOpts)
				if err != nil {
					return err
				}
			}

			return printReports(cmd.OutOrStdout(), reports, flags.json)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read one CSV document from stdin")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil, "columns to treat as categorical even when numeric")
	return cmd
}

// resolveNames expands patterns against the store and keeps plain names as
// given. Duplicates are dropped, first occurrence wins.
func resolveNames(ctx context.Context, store dataset.Store, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{dataset.DefaultPattern}
	}

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matched, err := store.List(ctx, arg)
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: no files match %q", dataset.ErrNotFound, arg)
		}
		for _, name := range matched {
			add(name)
		}
	}
	return names, nil
}

// summarizeAll loads and summarizes files concurrently. Reports keep the
// order of names.
func summarizeAll(ctx context.Context, store dataset.Store, names []string, parseOpts []tabular.Option) ([]namedReport, error) {
	reports := make([]namedReport, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			entries, err := store.Load(gctx, name)
			if err != nil {
				return err
			}
			report, err := tabular.Summarize(string(entries[0].Data), parseOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			reports[i] = namedReport{Name: name, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func printReports(w io.Writer, reports []namedReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(reports)
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(reports) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", r.Name)
		}
		fmt.Fprint(w, r.Report.String())
	}
	return nil
}
