package picture

import (
	"fmt"
	"sort"
	"sync"
)

// TargetFactory creates a target sized for a width x height picture.
type TargetFactory func(width, height int) (Target, error)

var (
	registryMu sync.RWMutex
	targets    = make(map[string]TargetFactory)
)

// RegisterTarget makes a target available by name, following the
// database/sql driver pattern:
//
//	func init() {
//	    picture.RegisterTarget("raster", func(w, h int) (picture.Target, error) {
//	        return NewTarget(w, h), nil
//	    })
//	}
//
// It panics if factory is nil or name is already registered.
func RegisterTarget(name string, factory TargetFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("picture: RegisterTarget factory is nil")
	}
	if _, dup := targets[name]; dup {
		panic("picture: RegisterTarget called twice for " + name)
	}
	targets[name] = factory
}

// UnregisterTarget removes a target. Unknown names are ignored.
func UnregisterTarget(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(targets, name)
}

// NewTarget creates a registered target.
func NewTarget(name string, width, height int) (Target, error) {
	registryMu.RLock()
	factory, ok := targets[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("picture: unknown target %q (forgotten import?)", name)
	}
	return factory(width, height)
}

// MustTarget is like NewTarget but panics on error.
func MustTarget(name string, width, height int) Target {
	t, err := NewTarget(name, width, height)
	if err != nil {
		panic(err)
	}
	return t
}

// Targets returns the registered target names in sorted order.
func Targets() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := targets[name]
	return ok
}
