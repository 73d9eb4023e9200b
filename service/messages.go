package service

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/tabular"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
)

// Summary is the Summarize response: the structured report plus the text
// sections the analyze_csv_eda tool hands to a model.
type Summary struct {
	tabular.Report
	Text eda.Payload `json:"text"`
}

// RunRequest is the Run request.
type RunRequest struct {
	App       string `json:"app"`
	Prompt    string `json:"prompt"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ToolCall is one tool invocation reported by Run.
type ToolCall struct {
	Iteration int    `json:"iteration"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
	IsError   bool   `json:"is_error"`
}

// RunResponse is the Run response.
type RunResponse struct {
	Response   string     `json:"response"`
	Iterations int        `json:"iterations"`
	SessionID  string     `json:"session_id"`
	ToolCalls  []ToolCall `json:"tool_calls"`
}

func newSummary(r *tabular.Report) *Summary {
	return &Summary{Report: *r, Text: eda.NewPayload(r)}
}

func newRunResponse(r *kernel.Result) *RunResponse {
	out := &RunResponse{
		Response:   r.Response,
		Iterations: r.Iterations,
		SessionID:  r.SessionID,
		ToolCalls:  make([]ToolCall, len(r.ToolCalls)),
	}
	for i, tc := range r.ToolCalls {
		out.ToolCalls[i] = ToolCall{
			Iteration: tc.Iteration,
			ID:        tc.ID,
			Name:      tc.Name,
			Arguments: tc.Arguments,
			Result:    tc.Result,
			IsError:   tc.IsError,
		}
	}
	return out
}

// toStruct converts v to a Struct through its JSON encoding.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// fromStruct decodes s into v through its JSON encoding.
func fromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
