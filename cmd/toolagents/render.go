package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
	"github.com/tailored-agentic-units/toolagents/tools/serper"
)

var (
	colorAccent = color.RGB(240, 150, 0)
	colorFaint  = color.New(color.Faint)
	colorBold   = color.New(color.Bold)
	colorError  = color.New(color.FgRed)
)

const maxArgLen = 60

// renderToolCall renders one tool call as a header line with its arguments
// and an indented outcome line.
func renderToolCall(tc kernel.ToolCallRecord) string {
	var b strings.Builder
	b.WriteString(colorAccent.Sprint("●") + colorBold.Sprintf(" %s", tc.Name))
	b.WriteString("(" + renderArgs(tc) + ")\n")
	b.WriteString("  " + colorFaint.Sprint("└ ") + renderOutcome(tc))
	return b.String()
}

func renderArgs(tc kernel.ToolCallRecord) string {
	switch tc.Name {
	case eda.Name:
		csv := strings.TrimRight(gjson.Get(tc.Arguments, "csv_content").String(), "\n")
		lines := 0
		if csv != "" {
			lines = strings.Count(csv, "\n") + 1
		}
		return colorFaint.Sprint("csv_content: ") + fmt.Sprintf("%d lines", lines)
	case serper.ToolName:
		return colorFaint.Sprint("search_query: ") + gjson.Get(tc.Arguments, "search_query").String()
	}
	return truncate(tc.Arguments, maxArgLen)
}

func renderOutcome(tc kernel.ToolCallRecord) string {
	if tc.IsError {
		msg := strings.TrimPrefix(tc.Result, "error: ")
		if e := gjson.Get(tc.Result, "error"); e.Exists() {
			msg = e.String()
		}
		return colorError.Sprint("error: ") + msg
	}

	switch tc.Name {
	case eda.Name:
		counts := gjson.Get(tc.Result, "value_counts").Map()
		cols := make([]string, 0, len(counts))
		for name := range counts {
			cols = append(cols, name)
		}
		slices.Sort(cols)
		if len(cols) == 0 {
			return "done, no categorical columns"
		}
		return "done, categorical: " + strings.Join(cols, ", ")
	case serper.ToolName:
		n := strings.Count(tc.Result, "\n\n")
		return fmt.Sprintf("done, %d results", n)
	}
	return "done"
}

// renderAnswer renders markdown for the terminal unless raw is set.
func renderAnswer(md string, raw bool, width int) (string, error) {
	if raw {
		return strings.TrimSpace(md), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-5),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render answer: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
