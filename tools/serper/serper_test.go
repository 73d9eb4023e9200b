package serper_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/toolagents/tools"
	"github.com/tailored-agentic-units/toolagents/tools/serper"
)

const newsBody = `{
	"searchParameters": {"q": "golang", "type": "news"},
	"news": [
		{"title": "Go 1.25 released", "link": "https://go.dev/blog/go1.25", "snippet": "New release.", "date": "2 hours ago", "source": "The Go Blog", "position": 1},
		{"title": "Second", "link": "https://example.com/2", "position": 2},
		{"title": "Third", "link": "https://example.com/3", "position": 3}
	]
}`

func newServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("got X-API-KEY %q", r.Header.Get("X-API-KEY"))
		}
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			m := map[string]any{"path": r.URL.Path}
			json.Unmarshal(data, &m)
			m["path"] = r.URL.Path
			*seen = m
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := serper.NewClient(serper.Config{APIKeyEnv: "TOOLAGENTS_UNSET_SERPER_KEY"})
	if !errors.Is(err, serper.ErrMissingAPIKey) {
		t.Errorf("got %v, want ErrMissingAPIKey", err)
	}
}

func TestNewClient_KeyFromEnv(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "from-env")

	if _, err := serper.NewClient(serper.Config{}); err != nil {
		t.Errorf("NewClient failed: %v", err)
	}
}

func TestNewClient_UnsupportedSearchType(t *testing.T) {
	_, err := serper.NewClient(serper.Config{APIKey: "k", SearchType: "images"})
	if !errors.Is(err, serper.ErrSearchType) {
		t.Errorf("got %v, want ErrSearchType", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := serper.DefaultConfig()

	if cfg.NResults != 5 || cfg.SearchType != "news" || cfg.APIKeyEnv != "SERPER_API_KEY" {
		t.Errorf("got %+v", cfg)
	}
}

func TestClient_Search_News(t *testing.T) {
	var seen map[string]any
	server := newServer(t, http.StatusOK, newsBody, &seen)
	defer server.Close()

	c, err := serper.NewClient(serper.Config{APIKey: "test-key", BaseURL: server.URL, NResults: 2})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	results, err := c.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if seen["path"] != "/news" || seen["q"] != "golang" || seen["num"] != float64(2) {
		t.Errorf("got request %v", seen)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (capped by NResults)", len(results))
	}
	want := serper.Result{
		Title:   "Go 1.25 released",
		Link:    "https://go.dev/blog/go1.25",
		Snippet: "New release.",
		Date:    "2 hours ago",
		Source:  "The Go Blog",
	}
	if results[0] != want {
		t.Errorf("got %+v, want %+v", results[0], want)
	}
}

func TestClient_Search_Organic(t *testing.T) {
	var seen map[string]any
	server := newServer(t, http.StatusOK, `{"organic":[{"title":"Go","link":"https://go.dev"}]}`, &seen)
	defer server.Close()

	c, err := serper.NewClient(serper.Config{APIKey: "test-key", BaseURL: server.URL, SearchType: "search"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	results, err := c.Search(context.Background(), "go")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if seen["path"] != "/search" {
		t.Errorf("got path %v", seen["path"])
	}
	if len(results) != 1 || results[0].Link != "https://go.dev" {
		t.Errorf("got %+v", results)
	}
}

func TestClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		query   string
		wantErr error
		wantMsg string
	}{
		{name: "empty query", status: http.StatusOK, body: newsBody, query: "  ", wantErr: serper.ErrEmptyQuery},
		{name: "unauthorized", status: http.StatusForbidden, body: `{"message":"Unauthorized."}`, query: "go", wantErr: serper.ErrRequestFailed, wantMsg: "Unauthorized."},
		{name: "not json", status: http.StatusOK, body: `<html>`, query: "go", wantErr: serper.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.status, tt.body, nil)
			defer server.Close()

			c, err := serper.NewClient(serper.Config{APIKey: "test-key", BaseURL: server.URL})
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}

			_, err = c.Search(context.Background(), tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestTool_Handler(t *testing.T) {
	server := newServer(t, http.StatusOK, newsBody, nil)
	defer server.Close()

	c, err := serper.NewClient(serper.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	r := tools.NewRegistry()
	if err := serper.Register(r, c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := r.Execute(context.Background(), serper.ToolName, json.RawMessage(`{"search_query":"golang"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Content)
	}

	for _, want := range []string{"1. Go 1.25 released", "The Go Blog, 2 hours ago", "3. Third"} {
		if !strings.Contains(result.Content, want) {
			t.Errorf("content missing %q:\n%s", want, result.Content)
		}
	}
}

func TestTool_Handler_MissingQuery(t *testing.T) {
	c, err := serper.NewClient(serper.Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := c.Handler()(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing search_query")
	}

	if _, err := c.Handler()(context.Background(), json.RawMessage(`{bad`)); err == nil {
		t.Error("expected error for malformed arguments")
	}
}

func TestFormatResults_Empty(t *testing.T) {
	got := serper.FormatResults("nothing", nil)
	if got != `No results found for "nothing".` {
		t.Errorf("got %q", got)
	}
}
