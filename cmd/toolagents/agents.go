package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tailored-agentic-units/toolagents/apps"
	"github.com/tailored-agentic-units/toolagents/dataset"
	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/observability"
	"github.com/tailored-agentic-units/toolagents/tools"
)

func newEDACmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eda [file]",
		Short: "Run the EDA agent on a CSV file from the dataset directory",
		Long: `Sends the file to the EDA agent, which analyzes it with the analyze_csv_eda
tool and explains the results. Without a file argument sample.csv is used and
created first when it does not exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := dataset.NewStore(&opts.dataset)

			name := dataset.SampleName
			if len(args) == 1 {
				name = args[0]
			} else {
				created, err := dataset.EnsureSample(ctx, store)
				if err != nil {
					return err
				}
				if created {
					ancli.PrintOK(fmt.Sprintf("created %s in %s\n", dataset.SampleName, opts.dataset.Dir))
				}
			}

			entries, err := store.Load(ctx, name)
			if err != nil {
				return err
			}

			reg, _, err := newToolRegistry(opts.serper, false)
			if err != nil {
				return err
			}
			return runApp(cmd, opts, apps.EDA(), reg, apps.EDAPrompt(string(entries[0].Data)))
		},
	}
}

func newNewsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "news <question>...",
		Short: "Ask the news agent a question answered from Serper news search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := newToolRegistry(opts.serper, true)
			if err != nil {
				return err
			}
			return runApp(cmd, opts, apps.News(), reg, strings.Join(args, " "))
		},
	}
}

// runApp runs one prompt through an app and prints the tool calls and the
// answer. A spinner shows progress when stdout is a terminal.
func runApp(cmd *cobra.Command, opts *options, app apps.App, reg *tools.Registry, prompt string) error {
	out := cmd.OutOrStdout()

	exec := func(ctx context.Context, status func(string)) (*kernel.Result, error) {
		k, err := app.Kernel(*opts.kernel, reg, kernel.WithObserver(newObserver(opts.sink, status)))
		if err != nil {
			return nil, err
		}
		return k.Run(ctx, prompt)
	}

	var (
		result *kernel.Result
		err    error
	)
	if interactive(out) && !opts.verbose {
		result, err = runWithSpinner(cmd.Context(), out, app.AgentName, exec)
	} else {
		result, err = exec(cmd.Context(), func(string) {})
	}
	if err != nil {
		return err
	}

	for _, tc := range result.ToolCalls {
		fmt.Fprintln(out, renderToolCall(tc))
	}
	if len(result.ToolCalls) > 0 {
		fmt.Fprintln(out)
	}

	answer, err := renderAnswer(result.Response, opts.raw, terminalWidth(out))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, answer)
	return nil
}

// newObserver reports kernel progress through status and forwards every
// event to sink.
func newObserver(sink observability.Observer, status func(string)) observability.Observer {
	progress := observability.FuncObserver(func(_ context.Context, e observability.Event) {
		switch e.Type {
		case kernel.EventIterationStart:
			status(fmt.Sprintf("thinking (step %v)", e.Data["iteration"]))
		case kernel.EventToolCall:
			status(fmt.Sprintf("calling %v", e.Data["name"]))
		}
	})
	return observability.NewMultiObserver(sink, progress)
}

func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	const fallback = 80
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
