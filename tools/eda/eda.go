// Package eda exposes the tabular summarizer as the analyze_csv_eda tool.
package eda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/tabular"
	"github.com/tailored-agentic-units/toolagents/tools"
)

// Name is the tool name offered to the model.
const Name = "analyze_csv_eda"

// Payload is the tool output. Every section is rendered text so the model
// reads it the way an analyst would.
type Payload struct {
	Head        string            `json:"head"`
	Describe    string            `json:"describe"`
	NullCounts  string            `json:"null_counts"`
	ValueCounts map[string]string `json:"value_counts"`
}

type args struct {
	CSVContent string `json:"csv_content"`
}

// Tool returns the tool definition.
func Tool() protocol.Tool {
	return protocol.Tool{
		Name: Name,
		Description: "Analyzes the content of a CSV file provided as a string and performs basic EDA. " +
			"Returns the first 5 rows, descriptive statistics for every column, " +
			"null counts per column and the top 5 value counts for each categorical column.",
		Parameters: protocol.ObjectSchema(map[string]string{
			"csv_content": "A string containing the content of the CSV file.",
		}, "csv_content"),
	}
}

// NewPayload renders a report into the tool output shape.
func NewPayload(r *tabular.Report) Payload {
	p := Payload{
		Head:        r.Head,
		Describe:    r.DescribeText(),
		NullCounts:  r.NullCountsText(),
		ValueCounts: make(map[string]string, len(r.ValueCounts)),
	}
	for _, name := range r.CategoricalColumns() {
		p.ValueCounts[name] = r.ValueCountsText(name)
	}
	return p
}

// Handler runs the summarizer on the csv_content argument. Malformed CSV is
// reported to the model as an error result rather than a Go error.
func Handler(ctx context.Context, raw json.RawMessage) (tools.Result, error) {
	if err := ctx.Err(); err != nil {
		return tools.Result{}, err
	}

	var a args
	if err := json.Unmarshal(raw, &a); err != nil {
		return tools.Result{}, fmt.Errorf("invalid arguments: %w", err)
	}

	report, err := tabular.Summarize(a.CSVContent)
	if err != nil {
		var perr *tabular.ParseError
		if !errors.As(err, &perr) {
			return tools.Result{}, err
		}
		content, merr := encode(map[string]string{
			"error": "Failed to read CSV content: " + err.Error(),
		})
		if merr != nil {
			return tools.Result{}, merr
		}
		return tools.Result{Content: content, IsError: true}, nil
	}

	content, err := encode(NewPayload(report))
	if err != nil {
		return tools.Result{}, err
	}
	return tools.Result{Content: content}, nil
}

// Register adds the tool to r.
func Register(r *tools.Registry) error {
	return r.Register(Tool(), Handler)
}

func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
