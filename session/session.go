// Package session owns the provider pool and the per-session registry: it
// binds session identifiers to adapters in priority order, tracks estimated
// context consumption, and resets context deterministically when the budget
// is exceeded.
package session

import (
	"time"

	"github.com/memsift/memsift/core"
)

// Policy carries the context-lifecycle configuration for all sessions.
type Policy struct {
	// MaxContextTokens is the budget past which a session's counters are
	// reset on the next lookup.
	MaxContextTokens int `json:"max_context_tokens" mapstructure:"max_context_tokens"`
}

// DefaultMaxContextTokens is used when the policy leaves the budget unset.
const DefaultMaxContextTokens = 8192

// Session binds one session identifier to one provider adapter plus usage
// counters. The provider never changes for the life of the identifier; a
// context reset zeroes the counters only.
type Session struct {
	ID        string
	CreatedAt time.Time

	// ContextTokens is a monotonically increasing estimate of consumed
	// context, incremented by the filter after each completion. Not an exact
	// tokenizer count.
	ContextTokens int
	QueryCount    int

	provider core.Provider
}

func newSession(id string, provider core.Provider) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		provider:  provider,
	}
}

// Provider returns the adapter this session is bound to.
func (s *Session) Provider() core.Provider { return s.provider }

// ShouldCleanup reports whether the session has exceeded its context budget.
func (s *Session) ShouldCleanup(maxContextTokens int) bool {
	return s.ContextTokens > maxContextTokens
}

// ResetContext zeroes the usage counters. The bound provider and the session
// identifier are untouched: this is context-window hygiene, not an identity
// change.
func (s *Session) ResetContext() {
	s.ContextTokens = 0
	s.QueryCount = 0
}

// RecordQuery accounts one completed query against the session.
func (s *Session) RecordQuery(promptTokens int) {
	s.QueryCount++
	s.ContextTokens += promptTokens
}
