package session

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/memsift/memsift/core"
)

// BuildFunc constructs a provider adapter from one configuration record. The
// filter layer wires in its factory registry here; tests inject fakes.
type BuildFunc func(core.ProviderConfig) (core.Provider, error)

// Manager owns the pool of initialized provider adapters (ordered by
// configured priority, ascending) and the mapping from session identifier to
// Session. Process-wide; initialized once from configuration.
type Manager struct {
	mu       sync.Mutex
	pool     []core.Provider
	sessions map[string]*Session
	policy   Policy
	entropy  *ulid.MonotonicEntropy
	log      *logrus.Entry

	// bind creates a Session on a chosen adapter. Kept as a slot so the
	// priority walk can skip an adapter whose binding fails; overridden in
	// tests to exercise the fallback path.
	bind func(id string, provider core.Provider) (*Session, error)
}

// ManagerOption customises manager construction.
type ManagerOption func(*Manager)

// WithBinder overrides how a Session is created on a chosen adapter. The
// priority walk skips an adapter whose binding fails, so injecting a failing
// binder exercises the fallback path.
func WithBinder(bind func(id string, provider core.Provider) (*Session, error)) ManagerOption {
	return func(m *Manager) { m.bind = bind }
}

// NewManager initializes the adapter pool from the given configurations in
// priority order. Construction failures and unavailable backends are logged
// and skipped: a missing credential for one backend must not prevent the
// others from loading. An empty pool leaves the manager constructible but
// disabled.
func NewManager(configs []core.ProviderConfig, policy Policy, build BuildFunc, opts ...ManagerOption) *Manager {
	if policy.MaxContextTokens <= 0 {
		policy.MaxContextTokens = DefaultMaxContextTokens
	}

	ordered := make([]core.ProviderConfig, len(configs))
	copy(ordered, configs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	log := logrus.WithField("component", "session-manager")
	m := &Manager{
		sessions: make(map[string]*Session),
		policy:   policy,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		log:      log,
		bind: func(id string, provider core.Provider) (*Session, error) {
			return newSession(id, provider), nil
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, cfg := range ordered {
		provider, err := build(cfg)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"provider": cfg.Name,
				"model":    cfg.Model,
			}).Warn("Skipping provider: construction failed")
			continue
		}
		if !provider.IsAvailable() {
			log.WithFields(logrus.Fields{
				"provider": cfg.Name,
				"model":    cfg.Model,
				"enabled":  cfg.Enabled,
			}).Info("Skipping provider: not available")
			continue
		}
		m.pool = append(m.pool, provider)
		log.WithFields(logrus.Fields{
			"provider": cfg.Name,
			"model":    cfg.Model,
			"priority": cfg.Priority,
		}).Debug("Provider added to pool")
	}

	if len(m.pool) == 0 {
		log.Warn("No providers available; filtering is disabled")
	}
	return m
}

// Enabled reports whether the adapter pool is non-empty.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pool) > 0
}

// Providers returns the backend kinds in the pool, in priority order.
func (m *Manager) Providers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.pool))
	for _, p := range m.pool {
		names = append(names, p.Name())
	}
	return names
}

// GetOrCreateSession returns the session for id, creating and binding one if
// none exists. A fresh identifier is generated when id is empty. New sessions
// bind to the first adapter in priority order for which binding succeeds; if
// every adapter fails the call returns a no_provider_available error. An
// existing session over its context budget is reset in place before being
// returned.
func (m *Manager) GetOrCreateSession(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = ulid.MustNew(ulid.Timestamp(time.Now()), m.entropy).String()
	}

	if sess, ok := m.sessions[id]; ok {
		if sess.ShouldCleanup(m.policy.MaxContextTokens) {
			m.log.WithFields(logrus.Fields{
				"session":        id,
				"context_tokens": sess.ContextTokens,
				"max_context":    m.policy.MaxContextTokens,
			}).Debug("Context budget exceeded; resetting session context")
			sess.ResetContext()
		}
		return sess, nil
	}

	for _, provider := range m.pool {
		sess, err := m.bind(id, provider)
		if err != nil {
			m.log.WithError(err).WithFields(logrus.Fields{
				"session":  id,
				"provider": provider.Name(),
			}).Warn("Session binding failed; trying next provider")
			continue
		}
		m.sessions[id] = sess
		m.log.WithFields(logrus.Fields{
			"session":  id,
			"provider": provider.Name(),
		}).Debug("Session bound")
		return sess, nil
	}

	return nil, core.NewError(core.ErrNoProviderAvailable,
		fmt.Sprintf("no provider could bind session %s", id))
}

// CleanupSession removes the session for id from the registry. Idempotent;
// an unknown identifier is not an error.
func (m *Manager) CleanupSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.log.WithField("session", id).Debug("Session removed")
	}
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MaxContextTokens exposes the effective context budget.
func (m *Manager) MaxContextTokens() int { return m.policy.MaxContextTokens }
