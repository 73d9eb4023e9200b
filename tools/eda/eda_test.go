package eda_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/toolagents/tools"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
)

const sampleCSV = "col1,col2,col3\na,1,10.5\nb,2,20.3\na,1,15.0\nc,3,22.1\nb,2,18.7\na,,11.2\n"

func callArgs(t *testing.T, csv string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(map[string]string{"csv_content": csv})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return data
}

func TestTool_Definition(t *testing.T) {
	tool := eda.Tool()

	if tool.Name != "analyze_csv_eda" {
		t.Errorf("got name %q", tool.Name)
	}
	required, _ := tool.Parameters["required"].([]string)
	if len(required) != 1 || required[0] != "csv_content" {
		t.Errorf("got required %v", tool.Parameters["required"])
	}
}

func TestHandler_Sample(t *testing.T) {
	result, err := eda.Handler(context.Background(), callArgs(t, sampleCSV))
	if err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Content)
	}

	var p eda.Payload
	if err := json.Unmarshal([]byte(result.Content), &p); err != nil {
		t.Fatalf("result is not a payload: %v", err)
	}

	if !strings.HasPrefix(strings.TrimSpace(p.Head), "col1") {
		t.Errorf("head does not start with the header line: %q", p.Head)
	}
	if strings.Count(p.Head, "\n") != 5 {
		t.Errorf("head should have header plus five rows: %q", p.Head)
	}
	if !strings.Contains(p.Describe, "mean") || !strings.Contains(p.Describe, "unique") {
		t.Errorf("describe missing labels: %q", p.Describe)
	}
	if !strings.Contains(p.NullCounts, "col2  1") {
		t.Errorf("null counts should report one missing col2: %q", p.NullCounts)
	}
	if len(p.ValueCounts) != 1 {
		t.Fatalf("got value counts for %d columns, want 1", len(p.ValueCounts))
	}
	if !strings.HasPrefix(p.ValueCounts["col1"], "col1\na  3") {
		t.Errorf("got col1 value counts %q", p.ValueCounts["col1"])
	}
}

func TestHandler_ParseErrorBecomesErrorResult(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"ragged", "a,b\n1,2\n3,4,5\n"},
		{"binary", "a,b\n\x00\x01,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eda.Handler(context.Background(), callArgs(t, tt.csv))
			if err != nil {
				t.Fatalf("parse failures must not be Go errors: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected an error result")
			}

			var body map[string]string
			if err := json.Unmarshal([]byte(result.Content), &body); err != nil {
				t.Fatalf("error result is not JSON: %v", err)
			}
			if len(body) != 1 || !strings.HasPrefix(body["error"], "Failed to read CSV content: ") {
				t.Errorf("got error body %v", body)
			}
		})
	}
}

func TestHandler_InvalidArguments(t *testing.T) {
	if _, err := eda.Handler(context.Background(), json.RawMessage(`{not json`)); err == nil {
		t.Error("expected error for malformed arguments")
	}
}

func TestRegister(t *testing.T) {
	r := tools.NewRegistry()
	if err := eda.Register(r); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := r.Execute(context.Background(), eda.Name, callArgs(t, "x\n1\n2\n"))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.IsError {
		t.Errorf("unexpected error result: %s", result.Content)
	}
}
