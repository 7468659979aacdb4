package indexkit

import (
	"fmt"
)

// registration binds one native kind to the handler that owns it.
type registration struct {
	kind    Kind
	handler Handler
}

// TypeRegistry maps native kinds to handlers. It is an explicit object
// passed to every collaborator that needs value resolution; there is no
// ambient process-wide registry. Registration runs single-threaded at
// start-up; afterwards the registry is read-only and safe for concurrent use.
type TypeRegistry struct {
	entries  []registration
	fallback Handler
}

// NewTypeRegistry returns an empty registry whose Resolve falls back to the
// String handler.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{fallback: String}
}

// DefaultTypeRegistry returns a registry with the built-in handlers bound to
// the kinds they own, in canonical order. Text and String register no kinds:
// Text is reachable only by explicit declaration, and String handles strings
// and everything unregistered through the fallback.
func DefaultTypeRegistry() *TypeRegistry {
	r := NewTypeRegistry()
	r.MustRegister(Integer, KindInt)
	r.MustRegister(Float, KindFloat)
	r.MustRegister(Boolean, KindBool)
	r.MustRegister(Time, KindDate, KindDateTime)
	return r
}

// Register binds each kind to handler. Binding a kind that already has an
// owner is a conflict error: the registry refuses instead of silently letting
// the later registration win.
func (r *TypeRegistry) Register(handler Handler, kinds ...Kind) error {
	for _, kind := range kinds {
		for _, entry := range r.entries {
			if entry.kind == kind {
				return NewValidationError(ErrCodeKindConflict,
					fmt.Sprintf("kind %q is already owned by the %s handler", kind, entry.handler.FieldType()))
			}
		}
		r.entries = append(r.entries, registration{kind: kind, handler: handler})
	}
	return nil
}

// MustRegister is Register for start-up wiring; it panics on conflict.
func (r *TypeRegistry) MustRegister(handler Handler, kinds ...Kind) {
	if err := r.Register(handler, kinds...); err != nil {
		panic(err)
	}
}

// Resolve returns the handler owning value's kind, scanning registrations in
// order and returning the first match. It never fails: values of an
// unregistered kind resolve to the String fallback.
func (r *TypeRegistry) Resolve(value any) Handler {
	return r.HandlerForKind(KindOf(value))
}

// HandlerForKind returns the handler registered for kind, or the String
// fallback when none is.
func (r *TypeRegistry) HandlerForKind(kind Kind) Handler {
	for _, entry := range r.entries {
		if entry.kind == kind {
			return entry.handler
		}
	}
	return r.fallback
}
