package memsift

import (
	"github.com/memsift/memsift/core"
	"github.com/memsift/memsift/session"
)

// Option customises Filter construction.
type Option func(*filterOptions)

type filterOptions struct {
	providers []core.ProviderConfig
	policy    session.Policy
	template  core.PromptTemplate
	build     session.BuildFunc
	manager   *session.Manager
}

func defaultOptions() filterOptions {
	return filterOptions{
		template: core.DefaultPromptTemplate,
		build:    NewProvider,
	}
}

// WithProviders supplies the backend configurations, tried in priority order.
func WithProviders(configs ...core.ProviderConfig) Option {
	return func(o *filterOptions) { o.providers = configs }
}

// WithPolicy sets the session context-lifecycle policy.
func WithPolicy(policy session.Policy) Option {
	return func(o *filterOptions) { o.policy = policy }
}

// WithTemplate overrides the classification prompt template.
func WithTemplate(template core.PromptTemplate) Option {
	return func(o *filterOptions) { o.template = template }
}

// WithBuildFunc overrides how provider configurations become adapters.
// The default resolves through the factory registry.
func WithBuildFunc(build session.BuildFunc) Option {
	return func(o *filterOptions) { o.build = build }
}

// WithManager injects a pre-built session manager, bypassing pool
// initialization. Used by tests and embedders that share a manager.
func WithManager(manager *session.Manager) Option {
	return func(o *filterOptions) { o.manager = manager }
}
