// Package capability holds the registry of host functions the assistant can
// invoke, and the dispatcher that executes them with failure isolation.
package capability

import (
	"context"
	"sort"
	"sync"

	"github.com/wellspring-ai/wellspring/internal/domain"
)

// Invocation is the opaque per-conversation context passed to handlers.
type Invocation struct {
	UserID   string
	UserName string
}

// Handler executes one capability. Well-behaved handlers signal domain
// errors in their result value, but the dispatcher tolerates returned errors
// and panics either way.
type Handler func(ctx context.Context, args map[string]any, inv Invocation) (any, error)

type entry struct {
	decl    domain.FunctionDeclaration
	handler Handler
}

// Registry maps declared function names to executable host behavior.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty capability registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a capability. Re-registering a name replaces it.
func (r *Registry) Register(decl domain.FunctionDeclaration, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[decl.Name] = entry{decl: decl, handler: h}
}

// Lookup returns the handler for a declared name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.handler, true
}

// Declarations returns a snapshot of all declarations, sorted by name so the
// advertised list is stable across requests.
func (r *Registry) Declarations() []domain.FunctionDeclaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decls := make([]domain.FunctionDeclaration, 0, len(r.entries))
	for _, e := range r.entries {
		decls = append(decls, e.decl)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

// Len reports how many capabilities are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
