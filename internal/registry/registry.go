package registry

import (
	"fmt"
	"sync"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/ports"
)

// Factory is a function that creates a PromptOptimizer instance given a
// configuration. domain.CapabilityConfig serves as the unified configuration
// shape for every adapter.
type Factory func(cfg domain.CapabilityConfig) (ports.PromptOptimizer, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes an optimizer factory available to the system.
// 'type' is the key (e.g., "bedrock", "mock").
func Register(optimizerType string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[optimizerType]; exists {
		panic(fmt.Sprintf("optimizer factory %s already registered", optimizerType))
	}
	factories[optimizerType] = f
}

// Get retrieves a factory to create an optimizer of a specific type.
func Get(optimizerType string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[optimizerType]
	if !ok {
		return nil, fmt.Errorf("optimizer factory not found for type: %s", optimizerType)
	}
	return f, nil
}

// Create is a convenience that resolves the factory for cfg.Type and runs it.
func Create(cfg domain.CapabilityConfig) (ports.PromptOptimizer, error) {
	f, err := Get(cfg.Type)
	if err != nil {
		return nil, err
	}
	return f(cfg)
}
