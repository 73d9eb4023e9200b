// Package protocol defines the conversation types shared by the agent,
// session, tools and kernel packages.
package protocol

import "encoding/json"

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by the model. The fields are flat
// inside the runtime; on the wire they use the chat-completions nesting
// ({id, type, function: {name, arguments}}).
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function wireFunction `json:"function"`
}

func (tc ToolCall) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireToolCall{
		ID:       tc.ID,
		Type:     "function",
		Function: wireFunction{Name: tc.Name, Arguments: tc.Arguments},
	})
}

// UnmarshalJSON accepts the nested wire shape as well as the flat shape.
func (tc *ToolCall) UnmarshalJSON(data []byte) error {
	var wire wireToolCall
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Function.Name != "" {
		*tc = ToolCall{ID: wire.ID, Name: wire.Function.Name, Arguments: wire.Function.Arguments}
		return nil
	}

	type flat ToolCall
	return json.Unmarshal(data, (*flat)(tc))
}

// Message is a single text message in a conversation. Assistant messages
// may carry ToolCalls; tool messages carry the ToolCallID they answer.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// NewMessage creates a Message with the given role and text.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages starts a conversation from a single message.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}

// ToolResult creates the tool message answering call id.
func ToolResult(id, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: id}
}
