package compat

import (
	"github.com/memsift/memsift"
	"github.com/memsift/memsift/core"
)

func init() {
	memsift.RegisterProvider("groq", &Factory{name: "groq", baseURL: "https://api.groq.com/openai/v1"})
	memsift.RegisterProvider("xai", &Factory{name: "xai", baseURL: "https://api.x.ai/v1"})
}

// Factory creates adapters for one OpenAI-compatible backend.
type Factory struct {
	name    string
	baseURL string
}

// New creates a new adapter with the given configuration.
func (f *Factory) New(cfg core.ProviderConfig) (core.Provider, error) {
	return New(f.name, f.baseURL, cfg), nil
}
