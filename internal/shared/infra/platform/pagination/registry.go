package pagination

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownEntity      = errors.New("unknown entity")
	ErrDuplicateEntity    = errors.New("entity already registered")
	ErrEntityTypeMismatch = errors.New("entity handle type mismatch")
)

// pager es la vista sin tipo de un Binding, para despachar por nombre.
type pager[F any] interface {
	paginateAny(ctx context.Context, req Request[F]) (*Result[any], error)
}

// ---------------- Binding ----------------

// Binding es un Handle ya asociado a su tipo de entidad:
// binding.Paginate(ctx, req) equivale a Paginate(ctx, handle, req).
type Binding[T any, F any] struct {
	kind   string
	handle Handle[T, F]
}

func (b *Binding[T, F]) Kind() string { return b.kind }

func (b *Binding[T, F]) Paginate(ctx context.Context, req Request[F]) (*Result[T], error) {
	return Paginate(ctx, b.handle, req)
}

func (b *Binding[T, F]) paginateAny(ctx context.Context, req Request[F]) (*Result[any], error) {
	res, err := b.Paginate(ctx, req)
	if err != nil {
		return nil, err
	}
	return Map(res, func(item T) any { return item }), nil
}

// ---------------- Registry ----------------

// Registry asocia nombres de entidad ("product", "blog", ...) con sus handles.
// Se rellena al arrancar; después solo se lee.
type Registry[F any] struct {
	mu      sync.RWMutex
	entries map[string]pager[F]
}

func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{entries: make(map[string]pager[F])}
}

// Register da de alta un tipo de entidad. Registrar dos veces el mismo nombre es un error.
func Register[T any, F any](r *Registry[F], kind string, h Handle[T, F]) (*Binding[T, F], error) {
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilHandle, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[kind]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntity, kind)
	}
	b := &Binding[T, F]{kind: kind, handle: h}
	r.entries[kind] = b
	return b, nil
}

// For recupera el binding tipado de una entidad registrada.
func For[T any, F any](r *Registry[F], kind string) (*Binding[T, F], error) {
	r.mu.RLock()
	entry, ok := r.entries[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, kind)
	}
	b, ok := entry.(*Binding[T, F])
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityTypeMismatch, kind)
	}
	return b, nil
}

// Paginate despacha por nombre sin conocer el tipo de la entidad.
func (r *Registry[F]) Paginate(ctx context.Context, kind string, req Request[F]) (*Result[any], error) {
	r.mu.RLock()
	entry, ok := r.entries[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, kind)
	}
	return entry.paginateAny(ctx, req)
}

// Kinds devuelve los nombres registrados, ordenados.
func (r *Registry[F]) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
