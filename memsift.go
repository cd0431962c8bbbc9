// Package memsift decides whether observed agent events should be persisted
// into a long-term memory graph. It routes each session to one of several LLM
// backends with hierarchical fallback, tracks per-session context consumption,
// and fails open: a broken or absent filtering layer must never cause data
// loss, at worst over-storage.
package memsift

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/memsift/memsift/core"
	"github.com/memsift/memsift/internal/tokens"
	"github.com/memsift/memsift/obs"
	"github.com/memsift/memsift/session"
)

// Filter is the public decision point. Construct once with New and share; all
// methods are safe for use from multiple goroutines driving distinct session
// identifiers.
type Filter struct {
	sessions *session.Manager
	template core.PromptTemplate
	log      *logrus.Entry
}

// New constructs a Filter from the given options. Provider configurations are
// resolved through the factory registry; backends that fail construction or
// report unavailable are skipped. A Filter with no usable backend is valid
// and returns fail-open decisions.
func New(opts ...Option) *Filter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	mgr := o.manager
	if mgr == nil {
		mgr = session.NewManager(o.providers, o.policy, o.build)
	}
	return &Filter{
		sessions: mgr,
		template: o.template,
		log:      logrus.WithField("component", "filter"),
	}
}

// Enabled reports whether at least one backend is usable.
func (f *Filter) Enabled() bool { return f.sessions.Enabled() }

// Sessions exposes the session manager for lifecycle control and stats.
func (f *Filter) Sessions() *session.Manager { return f.sessions }

// ShouldStore classifies one observed event. It never returns an error: any
// internal fault is absorbed into a store-everything decision.
func (f *Filter) ShouldStore(ctx context.Context, event, eventContext, sessionID string) core.Decision {
	if !f.sessions.Enabled() {
		id := sessionID
		if id == "" {
			id = "none"
		}
		return core.Decision{
			ShouldStore: true,
			Category:    core.CategoryFilterDisabled,
			Reason:      "Filtering is disabled",
			SessionID:   id,
		}
	}

	ctx, recorder := obs.StartRequest(ctx, "memsift.ShouldStore",
		attribute.String("filter.session", sessionID),
	)
	decision := f.classify(ctx, event, eventContext, sessionID)
	recorder.End(nil, 0)
	obs.RecordDecision(decision.Category, decision.ShouldStore)
	return decision
}

func (f *Filter) classify(ctx context.Context, event, eventContext, sessionID string) core.Decision {
	sess, err := f.sessions.GetOrCreateSession(sessionID)
	if err != nil {
		return f.failOpen(sessionID, err)
	}

	prompt := f.template.Render(event, eventContext)
	decision, err := sess.Provider().Complete(ctx, prompt)
	if err != nil {
		return f.failOpen(sessionID, err)
	}

	sess.RecordQuery(tokens.EstimateText(prompt))
	decision.SessionID = sess.ID
	return *decision
}

// CleanupSession removes the session for id. Idempotent.
func (f *Filter) CleanupSession(id string) {
	f.sessions.CleanupSession(id)
}

func (f *Filter) failOpen(sessionID string, err error) core.Decision {
	f.log.WithError(err).WithField("session", sessionID).
		Warn("Filter failed; storing event")
	id := sessionID
	if id == "" {
		id = "error"
	}
	return core.Decision{
		ShouldStore: true,
		Category:    core.CategoryFilterError,
		Reason:      "Filter failed: " + err.Error(),
		SessionID:   id,
	}
}
