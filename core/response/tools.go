// Package response parses chat-completions responses returned by model
// providers.
package response

import (
	"encoding/json"
	"fmt"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
)

// TokenUsage reports the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one completion candidate.
type Choice struct {
	Index        int              `json:"index"`
	Message      protocol.Message `json:"message"`
	FinishReason string           `json:"finish_reason,omitempty"`
}

// ToolsResponse is the response to a chat-completions request that offered
// tools. A choice either carries text content or a list of tool calls.
type ToolsResponse struct {
	ID      string      `json:"id,omitempty"`
	Object  string      `json:"object,omitempty"`
	Created int64       `json:"created,omitempty"`
	Model   string      `json:"model"`
	Choices []Choice    `json:"choices"`
	Usage   *TokenUsage `json:"usage,omitempty"`
}

// ParseTools parses a tools response from JSON bytes.
func ParseTools(body []byte) (*ToolsResponse, error) {
	var response ToolsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse tools response: %w", err)
	}
	return &response, nil
}

// Content returns the text of the first choice, or "" when there is none.
func (r *ToolsResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ToolCalls returns the tool calls of the first choice.
func (r *ToolsResponse) ToolCalls() []protocol.ToolCall {
	if len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message.ToolCalls
}
