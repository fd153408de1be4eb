// Package checks provides the registry and implementation of all smoke checks
// supported by the smokecheck engine. This file defines the registry system
// that allows checks to be registered, discovered, and executed by name.
package checks

import (
	"context"
	"fmt"
	"sync"

	"smokecheck/pkg/suite"
)

// Handler is the function signature for check execution handlers. A handler
// returns whether the check passed; an error explains a failure but never
// aborts the surrounding run.
type Handler func(ctx context.Context, s *suite.Suite) (bool, error)

// entry pairs a handler with its human-readable title.
type entry struct {
	title   string
	handler Handler
}

// Registry manages the registration and lookup of check handlers.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates a new empty check registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a new check handler to the registry.
func (r *Registry) Register(name, title string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("check handler '%s' is already registered", name)
	}
	if handler == nil {
		return fmt.Errorf("check handler '%s' must not be nil", name)
	}

	r.entries[name] = entry{title: title, handler: handler}
	return nil
}

// MustRegister adds a new check handler to the registry, panicking on failure.
func (r *Registry) MustRegister(name, title string, handler Handler) {
	if err := r.Register(name, title, handler); err != nil {
		panic(err)
	}
}

// Get retrieves a check handler by name.
func (r *Registry) Get(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("no handler registered for check '%s'", name)
	}
	return e.handler, nil
}

// Title returns the human-readable title for a check, falling back to the
// registry name when the check is unknown.
func (r *Registry) Title(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, exists := r.entries[name]; exists {
		return e.title
	}
	return name
}

// DefaultRegistry is the global instance populated by init() registration.
var DefaultRegistry = NewRegistry()

// MustRegisterCheck registers a check handler with the default registry,
// panicking if it fails.
func MustRegisterCheck(name, title string, handler Handler) {
	DefaultRegistry.MustRegister(name, title, handler)
}

// GetCheck retrieves a check handler from the default registry.
func GetCheck(name string) (Handler, error) {
	return DefaultRegistry.Get(name)
}

// CheckTitle returns the human-readable title for a check in the default
// registry.
func CheckTitle(name string) string {
	return DefaultRegistry.Title(name)
}
