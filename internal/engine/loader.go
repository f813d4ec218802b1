package engine

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Factory creates an engine instance.
type Factory func() (Engine, error)

// RegistryLoader resolves engines registered by name. Safe for
// concurrent use.
type RegistryLoader struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistryLoader creates an empty RegistryLoader.
func NewRegistryLoader() *RegistryLoader {
	return &RegistryLoader{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name.
func (r *RegistryLoader) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = f
}

// Load creates the engine registered under name.
//
//nolint:ireturn // loader contract
func (r *RegistryLoader) Load(name string) (Engine, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrEngineNotFound, "%q", name)
	}

	eng, err := f()
	if err != nil {
		return nil, errors.Wrapf(err, "creating engine %q", name)
	}

	if eng == nil {
		return nil, errors.Newf("factory for %q returned no engine", name)
	}

	return eng, nil
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(name string) (Engine, error)

// Load calls f.
//
//nolint:ireturn // loader contract
func (f LoaderFunc) Load(name string) (Engine, error) {
	return f(name)
}

// Verify interface compliance.
var (
	_ Loader = (*RegistryLoader)(nil)
	_ Loader = LoaderFunc(nil)
)
