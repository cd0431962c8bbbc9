// Package compat adapts OpenAI-compatible chat APIs (groq and similar hosted
// endpoints) by delegating to the openai adapter with an overridden base URL
// and reported backend kind.
package compat

import (
	"github.com/memsift/memsift/core"
	"github.com/memsift/memsift/providers/openai"
)

// New constructs a provider targeting an OpenAI-compatible API surface. The
// name is reported as the backend kind; baseURL is used when the
// configuration does not carry one.
func New(name, baseURL string, cfg core.ProviderConfig) core.Provider {
	opts := []openai.Option{openai.WithName(name)}
	if cfg.BaseURL == "" && baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	return openai.New(cfg, opts...)
}
