package anthropic

import (
	"github.com/memsift/memsift"
	"github.com/memsift/memsift/core"
)

func init() {
	memsift.RegisterProvider("anthropic", &Factory{})
}

// Factory creates Anthropic adapter instances.
type Factory struct{}

// New creates a new Anthropic adapter with the given configuration.
func (f *Factory) New(cfg core.ProviderConfig) (core.Provider, error) {
	return New(cfg), nil
}
