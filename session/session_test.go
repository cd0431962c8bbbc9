package session

import "testing"

func TestResetContextIdempotent(t *testing.T) {
	provider := &fakeProvider{name: "primary", available: true}
	sess := newSession("agent-1", provider)
	sess.RecordQuery(40)
	sess.RecordQuery(25)

	if sess.ContextTokens != 65 || sess.QueryCount != 2 {
		t.Fatalf("unexpected counters: tokens=%d queries=%d", sess.ContextTokens, sess.QueryCount)
	}

	sess.ResetContext()
	if sess.ContextTokens != 0 || sess.QueryCount != 0 {
		t.Fatalf("first reset left counters: tokens=%d queries=%d", sess.ContextTokens, sess.QueryCount)
	}
	sess.ResetContext()
	if sess.ContextTokens != 0 || sess.QueryCount != 0 {
		t.Fatalf("second reset left counters: tokens=%d queries=%d", sess.ContextTokens, sess.QueryCount)
	}
	if sess.Provider() != provider {
		t.Fatalf("reset must not touch the bound provider")
	}
	if sess.ID != "agent-1" {
		t.Fatalf("reset must not touch the identifier")
	}
}

func TestShouldCleanupBoundary(t *testing.T) {
	sess := newSession("agent-1", &fakeProvider{name: "p", available: true})
	sess.ContextTokens = 100
	if sess.ShouldCleanup(100) {
		t.Fatalf("budget is exclusive; exactly max is not over")
	}
	sess.ContextTokens = 101
	if !sess.ShouldCleanup(100) {
		t.Fatalf("expected cleanup above budget")
	}
}
