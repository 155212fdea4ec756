package lens

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/on-the-ground/flow_ive_go/shared/helper"
)

// Registry holds one Lens per (composite, narrow) type pairing.
//
// Lenses are registered once and reused for every lift between the pair.
// Resolution is explicit: callers hold the registry and ask for the pairing
// they need; there is no global instance.
type Registry struct {
	mu     sync.RWMutex
	lenses map[pairKey]any
}

type pairKey struct {
	composite reflect.Type
	narrow    reflect.Type
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{lenses: make(map[pairKey]any)}
}

var ErrNotRegistered = fmt.Errorf("no lens registered for type pair")

func keyOf[C, N any]() pairKey {
	return pairKey{
		composite: reflect.TypeOf((*C)(nil)).Elem(),
		narrow:    reflect.TypeOf((*N)(nil)).Elem(),
	}
}

// Register stores l for the (C, N) pairing, replacing any previous entry.
func Register[C, N any](r *Registry, l Lens[C, N]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lenses[keyOf[C, N]()] = l
}

func lookup[C, N any](r *Registry) func() (any, error) {
	return func() (any, error) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		key := keyOf[C, N]()
		l, ok := r.lenses[key]
		if !ok {
			return nil, fmt.Errorf("%w: (%v, %v)", ErrNotRegistered, key.composite, key.narrow)
		}
		return l, nil
	}
}

// Resolve returns the lens registered for the (C, N) pairing.
func Resolve[C, N any](r *Registry) (Lens[C, N], error) {
	return helper.GetTypedValueOf[Lens[C, N]](lookup[C, N](r))
}

// MustResolve is the panic-on-failure variant of Resolve.
// Use when the registration is guaranteed to exist.
func MustResolve[C, N any](r *Registry) Lens[C, N] {
	return helper.MustGetTypedValue[Lens[C, N]](lookup[C, N](r))
}
