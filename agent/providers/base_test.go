package providers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tailored-agentic-units/toolagents/agent/providers"
	"github.com/tailored-agentic-units/toolagents/core/config"
	"github.com/tailored-agentic-units/toolagents/core/protocol"
)

func TestNewBaseProvider(t *testing.T) {
	provider := providers.NewBaseProvider("test-provider", "https://api.example.com/")

	if provider.Name() != "test-provider" {
		t.Errorf("got name %q, want %q", provider.Name(), "test-provider")
	}

	if provider.BaseURL() != "https://api.example.com" {
		t.Errorf("got baseURL %q, want %q", provider.BaseURL(), "https://api.example.com")
	}

	if provider.Endpoint() != "https://api.example.com/chat/completions" {
		t.Errorf("got endpoint %q", provider.Endpoint())
	}
}

func TestBaseProvider_Marshal(t *testing.T) {
	provider := providers.NewBaseProvider("test", "https://api.test.com")

	data := &providers.ToolsData{
		Model:    "gpt-4o",
		Messages: protocol.InitMessages(protocol.RoleUser, "Hello"),
		Tools: []protocol.Tool{{
			Name:        "analyze_csv_eda",
			Description: "EDA",
			Parameters:  protocol.ObjectSchema(map[string]string{"csv_content": "CSV"}, "csv_content"),
		}},
		Options: map[string]any{
			"temperature": 0.7,
			"model":       "ignored",
		},
	}

	body, err := provider.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}

	if result["model"] != "gpt-4o" {
		t.Errorf("got model %v, want gpt-4o", result["model"])
	}

	if result["temperature"] != 0.7 {
		t.Errorf("got temperature %v, want 0.7", result["temperature"])
	}

	messages, ok := result["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("got messages %v, want one", result["messages"])
	}

	tools, ok := result["tools"].([]any)
	if !ok || len(tools) != 1 {
		t.Fatalf("got tools %v, want one", result["tools"])
	}
	tool := tools[0].(map[string]any)
	if tool["type"] != "function" {
		t.Errorf("got tool type %v, want function", tool["type"])
	}
	fn := tool["function"].(map[string]any)
	if fn["name"] != "analyze_csv_eda" {
		t.Errorf("got function name %v", fn["name"])
	}
}

func TestBaseProvider_Marshal_NoTools(t *testing.T) {
	provider := providers.NewBaseProvider("test", "https://api.test.com")

	body, err := provider.Marshal(&providers.ToolsData{Model: "m"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if _, ok := result["tools"]; ok {
		t.Error("expected tools key to be omitted")
	}
}

func TestOpenAI_SetHeaders(t *testing.T) {
	provider, err := providers.NewOpenAI("openai", "https://api.openai.com/v1", "sk-test")
	if err != nil {
		t.Fatalf("NewOpenAI failed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, provider.Endpoint(), nil)
	provider.SetHeaders(req)

	if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("got Authorization %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("got Content-Type %q", got)
	}
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	_, err := providers.NewOpenAI("openai", "https://api.openai.com/v1", "")
	if !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Errorf("got error %v, want ErrMissingAPIKey", err)
	}
}

func TestNewOllama(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1/chat/completions"},
		{"http://localhost:11434/", "http://localhost:11434/v1/chat/completions"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1/chat/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			provider := providers.NewOllama(tt.baseURL)
			if provider.Endpoint() != tt.want {
				t.Errorf("got endpoint %q, want %q", provider.Endpoint(), tt.want)
			}

			req, _ := http.NewRequest(http.MethodPost, provider.Endpoint(), nil)
			provider.SetHeaders(req)
			if req.Header.Get("Authorization") != "" {
				t.Error("ollama should not send credentials")
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.ProviderConfig
		wantName string
		wantErr  error
	}{
		{
			name:     "openai with key",
			cfg:      &config.ProviderConfig{Name: "openai", APIKey: "sk"},
			wantName: "openai",
		},
		{
			name:     "ollama default url",
			cfg:      &config.ProviderConfig{Name: "ollama"},
			wantName: "ollama",
		},
		{
			name:    "openai without key",
			cfg:     &config.ProviderConfig{Name: "openai", APIKeyEnv: "TOOLAGENTS_UNSET_KEY"},
			wantErr: providers.ErrMissingAPIKey,
		},
		{
			name:    "unknown",
			cfg:     &config.ProviderConfig{Name: "bedrock"},
			wantErr: providers.ErrUnknownProvider,
		},
		{
			name:    "nil",
			cfg:     nil,
			wantErr: providers.ErrUnknownProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := providers.FromConfig(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromConfig failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("got name %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestFromConfig_DefaultBaseURL(t *testing.T) {
	p, err := providers.FromConfig(&config.ProviderConfig{Name: "openrouter", APIKey: "k"})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if p.BaseURL() != "https://openrouter.ai/api/v1" {
		t.Errorf("got baseURL %q", p.BaseURL())
	}
}
