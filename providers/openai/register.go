package openai

import (
	"github.com/memsift/memsift"
	"github.com/memsift/memsift/core"
)

func init() {
	memsift.RegisterProvider("openai", &Factory{})
}

// Factory creates OpenAI adapter instances.
type Factory struct{}

// New creates a new OpenAI adapter with the given configuration.
func (f *Factory) New(cfg core.ProviderConfig) (core.Provider, error) {
	return New(cfg), nil
}
