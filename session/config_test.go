package session_test

import (
	"testing"

	"github.com/tailored-agentic-units/toolagents/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	if cfg != (session.Config{}) {
		t.Errorf("got %+v, want zero identity", cfg)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.Config{AppName: "eda_on_csv", UserID: "st004"}

	cfg.Merge(&session.Config{UserID: "st005", SessionID: "0018"})

	want := session.Config{AppName: "eda_on_csv", UserID: "st005", SessionID: "0018"}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestNew_FromConfig(t *testing.T) {
	cfg := session.DefaultConfig()
	s, err := session.New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if s.ID() == "" {
		t.Error("session ID is empty")
	}
}
