package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/session"
)

func TestService_CreateAndGet(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	cfg := session.Config{AppName: "eda_on_csv", UserID: "st004", SessionID: "0017"}
	created, err := svc.Create(ctx, cfg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	created.AddMessage(protocol.NewMessage(protocol.RoleUser, "hello"))

	got, err := svc.Get(ctx, "eda_on_csv", "st004", "0017")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Messages()) != 1 {
		t.Errorf("got %d messages, want the created session's 1", len(got.Messages()))
	}
}

func TestService_CreateDuplicate(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()
	cfg := session.Config{AppName: "news_app", UserID: "st04", SessionID: "01234"}

	if _, err := svc.Create(ctx, cfg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, cfg); !errors.Is(err, session.ErrSessionExists) {
		t.Errorf("got %v, want ErrSessionExists", err)
	}
}

func TestService_SameIDDifferentUsers(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	for _, user := range []string{"st04", "st05"} {
		if _, err := svc.Create(ctx, session.Config{AppName: "news_app", UserID: user, SessionID: "01234"}); err != nil {
			t.Fatalf("Create(%s) failed: %v", user, err)
		}
	}
}

func TestService_GenerateID(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	a, err := svc.Create(ctx, session.Config{AppName: "news_app", UserID: "st04"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := svc.Create(ctx, session.Config{AppName: "news_app", UserID: "st04"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("got IDs %q and %q, want distinct non-empty", a.ID(), b.ID())
	}

	ids, err := svc.List(ctx, "news_app", "st04")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("got %d sessions, want 2", len(ids))
	}
}

func TestService_GetNotFound(t *testing.T) {
	_, err := session.NewService().Get(context.Background(), "a", "u", "missing")
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}

func TestService_GetOrCreate(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()
	cfg := session.Config{AppName: "eda_on_csv", UserID: "st004", SessionID: "0017"}

	first, err := svc.GetOrCreate(ctx, cfg)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	first.AddMessage(protocol.NewMessage(protocol.RoleUser, "turn one"))

	second, err := svc.GetOrCreate(ctx, cfg)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if len(second.Messages()) != 1 {
		t.Error("GetOrCreate did not return the existing session")
	}
}

func TestService_GetOrCreate_Concurrent(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()
	cfg := session.Config{AppName: "eda_on_csv", UserID: "st004", SessionID: "0017"}

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			if _, err := svc.GetOrCreate(ctx, cfg); err != nil {
				t.Errorf("GetOrCreate failed: %v", err)
			}
		})
	}
	wg.Wait()

	ids, _ := svc.List(ctx, "eda_on_csv", "st004")
	if len(ids) != 1 {
		t.Errorf("got %d sessions, want 1", len(ids))
	}
}

func TestService_Delete(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, session.Config{AppName: "a", UserID: "u", SessionID: "s"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(ctx, "a", "u", "s"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "a", "u", "s"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("second Delete: got %v, want ErrSessionNotFound", err)
	}
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := session.NewService().Create(ctx, session.Config{}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestService_Acquire(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	alice, err := svc.Create(ctx, session.Config{AppName: "eda_on_csv", UserID: "alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	bob, err := svc.Create(ctx, session.Config{AppName: "eda_on_csv", UserID: "bob"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	release, err := svc.Acquire(ctx, alice)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := svc.Acquire(waitCtx, alice); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Acquire of a held session got %v, want DeadlineExceeded", err)
	}

	releaseBob, err := svc.Acquire(ctx, bob)
	if err != nil {
		t.Fatalf("another session should not wait: %v", err)
	}
	releaseBob()

	release()
	again, err := svc.Acquire(ctx, alice)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	again()
}

func TestService_Acquire_SerializesTurns(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()
	sesh, err := svc.Create(ctx, session.Config{AppName: "news_app", UserID: "st04", SessionID: "01234"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const turns = 20
	var wg sync.WaitGroup
	for i := range turns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := svc.Acquire(ctx, sesh)
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer release()
			sesh.AddMessage(protocol.NewMessage(protocol.RoleUser, "question"))
			sesh.AddMessage(protocol.ToolResult("call", string(rune('a'+i))))
		}()
	}
	wg.Wait()

	msgs := sesh.Messages()
	if len(msgs) != 2*turns {
		t.Fatalf("got %d messages, want %d", len(msgs), 2*turns)
	}
	for i := 0; i < len(msgs); i += 2 {
		if msgs[i].Role != protocol.RoleUser || msgs[i+1].Role != protocol.RoleTool {
			t.Fatalf("turn at %d interleaved: %s then %s", i, msgs[i].Role, msgs[i+1].Role)
		}
	}
}
