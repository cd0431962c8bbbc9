package session

import (
	"context"
	"errors"
	"testing"

	"github.com/memsift/memsift/core"
)

type fakeProvider struct {
	name      string
	available bool
	decision  *core.Decision
	err       error
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (*core.Decision, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}

func (f *fakeProvider) IsAvailable() bool { return f.available }

func (f *fakeProvider) Name() string { return f.name }

func buildFromPool(pool map[string]core.Provider) BuildFunc {
	return func(cfg core.ProviderConfig) (core.Provider, error) {
		p, ok := pool[cfg.Name]
		if !ok {
			return nil, core.NewError(core.ErrUnknownProvider, "unknown provider: "+cfg.Name)
		}
		return p, nil
	}
}

func TestNewManagerSkipsUnavailable(t *testing.T) {
	pool := map[string]core.Provider{
		"primary":   &fakeProvider{name: "primary", available: true},
		"nokey":     &fakeProvider{name: "nokey", available: false},
		"secondary": &fakeProvider{name: "secondary", available: true},
	}
	configs := []core.ProviderConfig{
		{Name: "secondary", Priority: 2},
		{Name: "bogus", Priority: 0},
		{Name: "primary", Priority: 1},
		{Name: "nokey", Priority: 3},
	}

	m := NewManager(configs, Policy{}, buildFromPool(pool))
	if !m.Enabled() {
		t.Fatalf("expected manager enabled")
	}
	names := m.Providers()
	if len(names) != 2 || names[0] != "primary" || names[1] != "secondary" {
		t.Fatalf("unexpected pool order: %v", names)
	}
}

func TestNewManagerEmptyPoolIsDisabledNotFatal(t *testing.T) {
	m := NewManager(nil, Policy{}, buildFromPool(nil))
	if m.Enabled() {
		t.Fatalf("expected disabled manager")
	}
	if _, err := m.GetOrCreateSession("s1"); !core.IsNoProviderAvailable(err) {
		t.Fatalf("expected no_provider_available, got %v", err)
	}
}

func TestGetOrCreateSessionGeneratesID(t *testing.T) {
	pool := map[string]core.Provider{"primary": &fakeProvider{name: "primary", available: true}}
	m := NewManager([]core.ProviderConfig{{Name: "primary"}}, Policy{}, buildFromPool(pool))

	first, err := m.GetOrCreateSession("")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected generated identifier")
	}
	second, err := m.GetOrCreateSession("")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("generated identifiers must be distinct")
	}
}

func TestDeterministicBinding(t *testing.T) {
	a := &fakeProvider{name: "a", available: true}
	b := &fakeProvider{name: "b", available: true}
	c := &fakeProvider{name: "c", available: true}
	m := NewManager(
		[]core.ProviderConfig{{Name: "a", Priority: 0}, {Name: "b", Priority: 1}, {Name: "c", Priority: 2}},
		Policy{},
		buildFromPool(map[string]core.Provider{"a": a, "b": b, "c": c}),
	)

	// Adapters before index 2 fail binding; the walk must land on c.
	m.bind = func(id string, provider core.Provider) (*Session, error) {
		if provider.Name() != "c" {
			return nil, errors.New("binding refused")
		}
		return newSession(id, provider), nil
	}

	sess, err := m.GetOrCreateSession("agent-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if sess.Provider().Name() != "c" {
		t.Fatalf("expected binding to c, got %s", sess.Provider().Name())
	}
}

func TestAllAdaptersFailBinding(t *testing.T) {
	a := &fakeProvider{name: "a", available: true}
	m := NewManager([]core.ProviderConfig{{Name: "a"}}, Policy{}, buildFromPool(map[string]core.Provider{"a": a}))
	m.bind = func(id string, provider core.Provider) (*Session, error) {
		return nil, errors.New("binding refused")
	}

	if _, err := m.GetOrCreateSession("agent-1"); !core.IsNoProviderAvailable(err) {
		t.Fatalf("expected no_provider_available, got %v", err)
	}
	if m.SessionCount() != 0 {
		t.Fatalf("failed binding must not leave a session behind")
	}
}

func TestContextBudgetResetOnLookup(t *testing.T) {
	pool := map[string]core.Provider{"primary": &fakeProvider{name: "primary", available: true}}
	m := NewManager([]core.ProviderConfig{{Name: "primary"}}, Policy{MaxContextTokens: 100}, buildFromPool(pool))

	sess, err := m.GetOrCreateSession("agent-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	sess.RecordQuery(60)
	sess.RecordQuery(60)

	again, err := m.GetOrCreateSession("agent-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if again != sess {
		t.Fatalf("reset must happen in place on the same session")
	}
	if again.ContextTokens != 0 || again.QueryCount != 0 {
		t.Fatalf("expected reset counters, got tokens=%d queries=%d", again.ContextTokens, again.QueryCount)
	}
	if again.Provider().Name() != "primary" {
		t.Fatalf("reset must not change the bound provider")
	}
}

func TestUnderBudgetNotReset(t *testing.T) {
	pool := map[string]core.Provider{"primary": &fakeProvider{name: "primary", available: true}}
	m := NewManager([]core.ProviderConfig{{Name: "primary"}}, Policy{MaxContextTokens: 100}, buildFromPool(pool))

	sess, _ := m.GetOrCreateSession("agent-1")
	sess.RecordQuery(100)

	// Budget is exclusive: exactly max is not over.
	again, _ := m.GetOrCreateSession("agent-1")
	if again.ContextTokens != 100 || again.QueryCount != 1 {
		t.Fatalf("session at the budget boundary must not reset")
	}
}

func TestCleanupSessionIdempotent(t *testing.T) {
	pool := map[string]core.Provider{"primary": &fakeProvider{name: "primary", available: true}}
	m := NewManager([]core.ProviderConfig{{Name: "primary"}}, Policy{}, buildFromPool(pool))

	if _, err := m.GetOrCreateSession("keep"); err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if _, err := m.GetOrCreateSession("drop"); err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}

	m.CleanupSession("drop")
	if m.SessionCount() != 1 {
		t.Fatalf("expected exactly one session left, got %d", m.SessionCount())
	}
	m.CleanupSession("drop")
	m.CleanupSession("never-existed")
	if m.SessionCount() != 1 {
		t.Fatalf("cleanup must be idempotent")
	}
}

// Recreating a session under the same identifier re-runs the binding walk
// from scratch: when availability changed in the interim the identifier may
// land on a different provider. Observable behaviour, documented here.
func TestRecreateMayBindDifferentProvider(t *testing.T) {
	a := &fakeProvider{name: "a", available: true}
	b := &fakeProvider{name: "b", available: true}
	m := NewManager(
		[]core.ProviderConfig{{Name: "a", Priority: 0}, {Name: "b", Priority: 1}},
		Policy{},
		buildFromPool(map[string]core.Provider{"a": a, "b": b}),
	)

	m.bind = func(id string, provider core.Provider) (*Session, error) {
		if provider.Name() == "a" {
			return nil, errors.New("a is refusing bindings right now")
		}
		return newSession(id, provider), nil
	}
	sess, err := m.GetOrCreateSession("agent-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if sess.Provider().Name() != "b" {
		t.Fatalf("expected fallback to b")
	}

	m.CleanupSession("agent-1")
	m.bind = func(id string, provider core.Provider) (*Session, error) {
		return newSession(id, provider), nil
	}

	recreated, err := m.GetOrCreateSession("agent-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession error: %v", err)
	}
	if recreated.Provider().Name() != "a" {
		t.Fatalf("recreation must re-run the binding walk, got %s", recreated.Provider().Name())
	}
}
