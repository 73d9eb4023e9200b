package apps_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/toolagents/agent/mock"
	"github.com/tailored-agentic-units/toolagents/apps"
	"github.com/tailored-agentic-units/toolagents/core/config"
	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/observability"
	"github.com/tailored-agentic-units/toolagents/tools"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
)

func TestPresets(t *testing.T) {
	tests := []struct {
		app     apps.App
		name    string
		agent   string
		user    string
		session string
		tool    string
	}{
		{apps.EDA(), "eda_on_csv", "eda_agent", "st004", "0017", "analyze_csv_eda"},
		{apps.News(), "news_app", "news_agent", "st04", "01234", "NewsSearch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.app.Name != tt.name || tt.app.AgentName != tt.agent {
				t.Errorf("got %s/%s, want %s/%s", tt.app.Name, tt.app.AgentName, tt.name, tt.agent)
			}
			if tt.app.UserID != tt.user || tt.app.SessionID != tt.session {
				t.Errorf("got user %q session %q", tt.app.UserID, tt.app.SessionID)
			}
			if len(tt.app.Tools) != 1 || tt.app.Tools[0] != tt.tool {
				t.Errorf("got tools %v, want [%s]", tt.app.Tools, tt.tool)
			}
			if tt.app.Model != "openai/gpt-4o" {
				t.Errorf("got model %q", tt.app.Model)
			}
		})
	}
}

func TestEDAPrompt(t *testing.T) {
	got := apps.EDAPrompt("a,b\n1,2\n")
	if got != "Perform EDA on this CSV data:\n\na,b\n1,2\n" {
		t.Errorf("got %q", got)
	}
}

func TestConfigure_FillsFromPreset(t *testing.T) {
	cfg := apps.EDA().Configure(kernel.DefaultConfig())

	if cfg.Agent.Name != "eda_agent" {
		t.Errorf("got agent name %q", cfg.Agent.Name)
	}
	if !strings.HasPrefix(cfg.Agent.Instruction, "As an agent, you will apply EDA") {
		t.Errorf("got instruction %q", cfg.Agent.Instruction)
	}
	if cfg.Agent.Model.Name != "gpt-4o" || cfg.Agent.Provider.Name != "openai" {
		t.Errorf("got model %s/%s", cfg.Agent.Provider.Name, cfg.Agent.Model.Name)
	}
	if cfg.Session.AppName != "eda_on_csv" || cfg.Session.UserID != "st004" || cfg.Session.SessionID != "0017" {
		t.Errorf("got session %+v", cfg.Session)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0] != eda.Name {
		t.Errorf("got tools %v", cfg.Tools)
	}
}

func TestConfigure_ExplicitValuesWin(t *testing.T) {
	base := kernel.DefaultConfig()
	base.Agent.Instruction = "Be terse."
	base.Agent.UseModel("ollama/qwen3:8b")
	base.Session.AppName = "other"
	base.Session.UserID = "alice"

	cfg := apps.News().Configure(base)

	if cfg.Agent.Instruction != "Be terse." {
		t.Errorf("got instruction %q", cfg.Agent.Instruction)
	}
	if cfg.Agent.Provider.Name != "ollama" || cfg.Agent.Model.Name != "qwen3:8b" {
		t.Errorf("got model %s/%s", cfg.Agent.Provider.Name, cfg.Agent.Model.Name)
	}
	if cfg.Session.AppName != "news_app" {
		t.Errorf("got app %q, want news_app", cfg.Session.AppName)
	}
	if cfg.Session.UserID != "alice" || cfg.Session.SessionID != "01234" {
		t.Errorf("got session %+v", cfg.Session)
	}
}

func TestConfigure_DoesNotMutateBase(t *testing.T) {
	base := kernel.DefaultConfig()
	base.Agent.Model = &config.ModelConfig{}

	apps.EDA().Configure(base)

	if base.Agent.Model.Name != "" {
		t.Errorf("base model mutated to %q", base.Agent.Model.Name)
	}
	if base.Session.AppName != "" {
		t.Errorf("base session mutated to %q", base.Session.AppName)
	}
}

func TestApp_Kernel(t *testing.T) {
	reg := tools.NewRegistry()
	if err := eda.Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(protocol.Tool{Name: "unrelated"}, func(context.Context, json.RawMessage) (tools.Result, error) {
		return tools.Result{}, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	a := mock.NewMockAgent(mock.WithResponses(
		mock.ToolCallResponse(protocol.ToolCall{
			ID:        "call_1",
			Name:      eda.Name,
			Arguments: `{"csv_content":"col1,col2\nA,1\nB,2\n"}`,
		}),
		mock.FinalResponse("col1 is categorical"),
	))

	k, err := apps.EDA().Kernel(kernel.DefaultConfig(), reg,
		kernel.WithAgent(a),
		kernel.WithObserver(observability.NoOpObserver{}),
	)
	if err != nil {
		t.Fatalf("Kernel failed: %v", err)
	}

	result, err := k.Run(context.Background(), apps.EDAPrompt("col1,col2\nA,1\nB,2\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.SessionID != "0017" {
		t.Errorf("got session %q, want 0017", result.SessionID)
	}
	if len(result.ToolCalls) != 1 || result.ToolCalls[0].IsError {
		t.Fatalf("got tool calls %+v", result.ToolCalls)
	}
	if !strings.Contains(result.ToolCalls[0].Result, `"value_counts"`) {
		t.Errorf("got tool result %q", result.ToolCalls[0].Result)
	}

	offered := a.OfferedTools()[0]
	if len(offered) != 1 || offered[0].Name != eda.Name {
		t.Errorf("got offered tools %v", offered)
	}

	system := a.Calls()[0][0]
	if system.Role != protocol.RoleSystem || system.Content != apps.EDA().Instruction {
		t.Errorf("got system message %+v", system)
	}
}

func TestApp_Kernel_MissingTool(t *testing.T) {
	_, err := apps.News().Kernel(kernel.DefaultConfig(), tools.NewRegistry(),
		kernel.WithAgent(mock.NewMockAgent()),
	)
	if !errors.Is(err, tools.ErrNotFound) {
		t.Errorf("got error %v, want tools.ErrNotFound", err)
	}
}
