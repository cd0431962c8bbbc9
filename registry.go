package memsift

import (
	"fmt"
	"strings"
	"sync"

	"github.com/memsift/memsift/core"
)

// Factory creates provider adapters for one backend kind.
type Factory interface {
	// New creates a new adapter instance with the given configuration.
	New(cfg core.ProviderConfig) (core.Provider, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// RegisterProvider registers an adapter factory for a backend kind. This is
// typically called from a provider package's init() function to enable
// self-registration on import.
//
// Example:
//
//	func init() {
//	    memsift.RegisterProvider("openai", &Factory{})
//	}
//
// Panics if the kind is already registered.
func RegisterProvider(kind string, factory Factory) {
	kind = strings.ToLower(kind)
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[kind]; exists {
		panic(fmt.Sprintf("memsift: provider %q already registered", kind))
	}
	registry[kind] = factory
}

// NewProvider constructs the adapter variant matching the configuration's
// backend kind. Returns an unknown_provider error when no factory matches.
func NewProvider(cfg core.ProviderConfig) (core.Provider, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(cfg.Name)]
	registryMu.RUnlock()
	if !ok {
		return nil, core.NewError(core.ErrUnknownProvider,
			fmt.Sprintf("no adapter registered for backend kind %q", cfg.Name))
	}
	return factory.New(cfg)
}

// RegisteredProviders returns the names of all registered backend kinds.
func RegisteredProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// IsProviderRegistered checks if a backend kind is registered.
func IsProviderRegistered(kind string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[strings.ToLower(kind)]
	return ok
}
