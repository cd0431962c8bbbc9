package core

import "net/http"

// ProviderConfig identifies one LLM backend. Immutable once loaded; ownership
// of the values rests with the configuration layer.
type ProviderConfig struct {
	// Name is the backend kind, matched against registered factories.
	Name        string  `json:"name" mapstructure:"name"`
	Model       string  `json:"model" mapstructure:"model"`
	APIKey      string  `json:"api_key" mapstructure:"api_key"`
	BaseURL     string  `json:"base_url,omitempty" mapstructure:"base_url"`
	Enabled     bool    `json:"enabled" mapstructure:"enabled"`
	Temperature float32 `json:"temperature,omitempty" mapstructure:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty" mapstructure:"max_tokens"`
	// Priority orders the adapter pool; lower values are tried first.
	Priority int               `json:"priority" mapstructure:"priority"`
	Headers  map[string]string `json:"headers,omitempty" mapstructure:"headers"`

	// HTTPClient overrides the default client construction. Not part of the
	// on-disk configuration; used by tests and embedders.
	HTTPClient *http.Client `json:"-" mapstructure:"-"`
}
