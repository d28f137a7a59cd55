package jsonproto

import (
	"fmt"
	"sync"
)

// Predicate decides whether a registry entry applies to a given canonical
// type, for registrations that can't be keyed by Origin alone (e.g. "any
// record type implementing Validator").
type Predicate func(ct *CanonicalType) bool

type registryEntry struct {
	predicate Predicate
	factory   HandlerFactory
}

// Registry maps canonical types (by origin, or by an arbitrary predicate)
// to the HandlerFactory that builds their Handler. Registries cascade: a
// lookup miss in a child registry falls through to its parent, so a
// request-scoped registry can override a handful of origins while
// inheriting everything else from the process-wide default.
type Registry struct {
	mu       sync.RWMutex
	parent   *Registry
	byOrigin map[Origin]HandlerFactory
	byHint   map[string]HandlerFactory // keyed by a caller-supplied original-type hint string
	scanned  []registryEntry

	instMu    sync.Mutex
	instances map[string]Handler

	resolver *Resolver
}

// NewRegistry creates a root registry (no parent) wired to resolver for any
// forward-ref resolution its record handlers need.
func NewRegistry(resolver *Resolver) *Registry {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return &Registry{
		byOrigin:  map[Origin]HandlerFactory{},
		byHint:    map[string]HandlerFactory{},
		instances: map[string]Handler{},
		resolver:  resolver,
	}
}

// Child returns a new registry that falls back to r for any lookup it can't
// satisfy itself.
func (r *Registry) Child() *Registry {
	child := NewRegistry(r.resolver)
	child.parent = r
	return child
}

// RegisterOrigin binds a canonical-type Origin to a handler factory.
func (r *Registry) RegisterOrigin(origin Origin, factory HandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOrigin[origin] = factory
	r.invalidateCache()
}

// RegisterHint binds an original-type hint string (e.g. a Go type name
// supplied by the caller as type_hint_value) directly to a factory,
// bypassing origin-based lookup. This is the highest-priority lookup tier.
func (r *Registry) RegisterHint(hint string, factory HandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHint[hint] = factory
	r.invalidateCache()
}

// RegisterPredicate adds a fallback rule scanned in registration order
// after origin lookup fails, for handlers keyed on arbitrary canonical-type
// shape rather than Origin alone.
func (r *Registry) RegisterPredicate(pred Predicate, factory HandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanned = append(r.scanned, registryEntry{predicate: pred, factory: factory})
	r.invalidateCache()
}

// invalidateCache drops memoized handler instances; called whenever a
// registration changes the lookup rules, since a cached instance might have
// been built from a factory that registration just replaced. Must be
// called with r.mu held.
func (r *Registry) invalidateCache() {
	r.instMu.Lock()
	r.instances = map[string]Handler{}
	r.instMu.Unlock()
}

// resolveFactory implements the cascade: hint lookup, then canonical-type
// origin lookup, then predicate scan, then parent-registry delegation.
func (r *Registry) resolveFactory(ct *CanonicalType, hint string) (HandlerFactory, bool) {
	r.mu.RLock()
	if hint != "" {
		if f, ok := r.byHint[hint]; ok {
			r.mu.RUnlock()
			return f, true
		}
	}
	if f, ok := r.byOrigin[ct.Origin]; ok {
		r.mu.RUnlock()
		return f, true
	}
	for _, entry := range r.scanned {
		if entry.predicate(ct) {
			r.mu.RUnlock()
			return entry.factory, true
		}
	}
	r.mu.RUnlock()
	if r.parent != nil {
		return r.parent.resolveFactory(ct, hint)
	}
	return nil, false
}

// Handler returns the (possibly cached) Handler instance for ct, with the
// given pinned value and original-type hint. Instances are memoized by
// (type key, constraints signature, pinned) so repeated lookups for the
// same shape reuse one built handler instead of rebuilding it.
func (r *Registry) Handler(ct *CanonicalType, pinned any, hint string) (Handler, error) {
	key := fmt.Sprintf("%s|%v|%s", ct.Key(), pinned, hint)

	r.instMu.Lock()
	if h, ok := r.instances[key]; ok {
		r.instMu.Unlock()
		return h, nil
	}
	r.instMu.Unlock()

	factory, ok := r.resolveFactory(ct, hint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandlerForType, ct.Key())
	}
	h := factory(ct, pinned, r)
	if err := h.Build(); err != nil {
		return nil, err
	}

	r.instMu.Lock()
	r.instances[key] = h
	r.instMu.Unlock()
	return h, nil
}

// DefaultRegistry is the process-wide registry every canonical handler
// family is registered against at package init.
var DefaultRegistry = NewRegistry(DefaultResolver)
