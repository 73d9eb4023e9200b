package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tailored-agentic-units/toolagents/agent"
	"github.com/tailored-agentic-units/toolagents/agent/mock"
	"github.com/tailored-agentic-units/toolagents/core/protocol"
)

var _ agent.Agent = (*mock.MockAgent)(nil)

func TestMockAgent_Script(t *testing.T) {
	boom := errors.New("boom")
	m := mock.NewMockAgent(
		mock.WithID("scripted"),
		mock.WithResponses(mock.ToolCallResponse(protocol.ToolCall{ID: "c1", Name: "NewsSearch", Arguments: "{}"})),
		mock.WithError(boom),
		mock.WithResponses(mock.FinalResponse("done")),
	)

	if m.ID() != "scripted" {
		t.Errorf("got ID %q", m.ID())
	}

	ctx := context.Background()
	msgs := protocol.InitMessages(protocol.RoleUser, "hi")

	resp, err := m.Tools(ctx, msgs, nil)
	if err != nil || len(resp.ToolCalls()) != 1 {
		t.Fatalf("step 1: got %v, %v", resp, err)
	}
	if _, err := m.Tools(ctx, msgs, nil); !errors.Is(err, boom) {
		t.Fatalf("step 2: got %v, want boom", err)
	}
	resp, err = m.Tools(ctx, msgs, nil)
	if err != nil || resp.Content() != "done" {
		t.Fatalf("step 3: got %v, %v", resp, err)
	}
	if _, err := m.Tools(ctx, msgs, nil); !errors.Is(err, mock.ErrExhausted) {
		t.Fatalf("step 4: got %v, want ErrExhausted", err)
	}

	if len(m.Calls()) != 4 {
		t.Errorf("got %d recorded calls, want 4", len(m.Calls()))
	}
}

func TestMockAgent_CancelledContext(t *testing.T) {
	m := mock.NewMockAgent(mock.WithResponses(mock.FinalResponse("never")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Tools(ctx, nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if len(m.Calls()) != 0 {
		t.Error("cancelled call should not be recorded")
	}
}
