/*
Package guarded wraps indexed lists with a mutex, for clients which share a
list between goroutines.

Indexed lists themselves do no locking. A guarded list serializes every
operation on the wrapped list. Identifier changes coordinate all lists of a
registry, so clients have to lock every guarded list of the registry for
their duration, which is what Registry.Change does.

Visitors and predicates run while the lock is held; they must not call back
into the same guarded list. Lock-order problems are reported by the
deadlock detector of github.com/sasha-s/go-deadlock.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package guarded

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/indexed"
	"github.com/npillmayer/zinc/maybe"
	"github.com/sasha-s/go-deadlock"
)

// tracer traces with key 'zinc.guarded'.
func tracer() tracing.Trace {
	return tracing.Select("zinc.guarded")
}

// ErrInvalidArgument signals a nil registry or list.
var ErrInvalidArgument = errors.New("guarded: invalid argument")

// Registry is a mutex-protected indexed.Registry.
type Registry[K any, T indexed.Object[K]] struct {
	deadlock.Mutex
	reg *indexed.Registry[K, T]
}

// NewRegistry creates a registry for guarded lists ordered by cmp.
func NewRegistry[K any, T indexed.Object[K]](cmp ident.Comparator[K]) (*Registry[K, T], error) {
	reg, err := indexed.NewRegistry[K, T](cmp)
	if err != nil {
		return nil, err
	}
	return &Registry[K, T]{reg: reg}, nil
}

// NewList creates a guarded list in reg.
func (r *Registry[K, T]) NewList(opts ...indexed.Option) (*List[K, T], error) {
	if r == nil || r.reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidArgument)
	}
	r.Lock()
	defer r.Unlock()
	list, err := r.reg.NewList(opts...)
	if err != nil {
		return nil, err
	}
	return &List[K, T]{registry: r, list: list}, nil
}

// Change runs the identifier-change protocol for obj while holding the
// registry lock: obj is detached from all lists, rename is called, and obj
// is re-inserted under its new identifier.
func (r *Registry[K, T]) Change(obj T, rename func(T)) error {
	if r == nil || r.reg == nil || rename == nil {
		return fmt.Errorf("%w: change without registry or rename function", ErrInvalidArgument)
	}
	r.Lock()
	defer r.Unlock()
	change, err := r.reg.BeginChange(obj)
	if err != nil {
		return err
	}
	rename(obj)
	return change.End()
}

// List is a mutex-protected indexed.List. All operations lock the registry
// the list has been created in.
type List[K any, T indexed.Object[K]] struct {
	registry *Registry[K, T]
	list     *indexed.List[K, T]
}

// lock locks the registry of l. It returns nil for a nil or zero List, and
// the unlock function otherwise.
func (l *List[K, T]) lock() func() {
	if l == nil || l.registry == nil || l.list == nil {
		tracer().Errorf("%v: operation on nil list", ErrInvalidArgument)
		return nil
	}
	l.registry.Lock()
	return l.registry.Unlock
}

func errNilList(op string) error {
	return fmt.Errorf("%w: %s on nil list", ErrInvalidArgument, op)
}

// Add locks l and adds obj.
func (l *List[K, T]) Add(obj T) error {
	unlock := l.lock()
	if unlock == nil {
		return errNilList("add")
	}
	defer unlock()
	return l.list.Add(obj)
}

// Remove locks l and removes obj.
func (l *List[K, T]) Remove(obj T) error {
	unlock := l.lock()
	if unlock == nil {
		return errNilList("remove")
	}
	defer unlock()
	return l.list.Remove(obj)
}

// RemoveAll locks l and removes all objects.
func (l *List[K, T]) RemoveAll() error {
	unlock := l.lock()
	if unlock == nil {
		return errNilList("remove all")
	}
	defer unlock()
	return l.list.RemoveAll()
}

// RemoveThat locks l and removes the objects for which pred holds.
func (l *List[K, T]) RemoveThat(pred func(T) bool) (int, error) {
	unlock := l.lock()
	if unlock == nil {
		return 0, errNilList("remove that")
	}
	defer unlock()
	return l.list.RemoveThat(pred)
}

// Contains locks l and checks membership of obj.
func (l *List[K, T]) Contains(obj T) bool {
	unlock := l.lock()
	if unlock == nil {
		return false
	}
	defer unlock()
	return l.list.Contains(obj)
}

// FindByIdentifier locks l and looks up the member with identifier id.
func (l *List[K, T]) FindByIdentifier(id K) maybe.Maybe[T] {
	unlock := l.lock()
	if unlock == nil {
		return maybe.Nothing[T]()
	}
	defer unlock()
	return l.list.FindByIdentifier(id)
}

// FirstThat locks l and returns the first member for which pred holds.
func (l *List[K, T]) FirstThat(pred func(T) bool) maybe.Maybe[T] {
	unlock := l.lock()
	if unlock == nil {
		return maybe.Nothing[T]()
	}
	defer unlock()
	return l.list.FirstThat(pred)
}

// ForEach locks l and visits all members in identifier order.
func (l *List[K, T]) ForEach(visit func(T) error) error {
	unlock := l.lock()
	if unlock == nil {
		return errNilList("for each")
	}
	defer unlock()
	return l.list.ForEach(visit)
}

// Len locks l and returns the number of members.
func (l *List[K, T]) Len() int {
	unlock := l.lock()
	if unlock == nil {
		return 0
	}
	defer unlock()
	return l.list.Len()
}

// Snapshot locks l and copies its members into a new, unguarded list.
// The snapshot lives in a registry of its own, ordered by the same
// comparator: it may be read without holding the lock of l, and identifier
// changes run through the registry of l do not touch it.
func (l *List[K, T]) Snapshot() (*indexed.List[K, T], error) {
	unlock := l.lock()
	if unlock == nil {
		return nil, errNilList("snapshot")
	}
	defer unlock()
	snapshot, err := indexed.New[K, T](l.registry.reg.Comparator(), indexed.Order(l.list.Order()))
	if err != nil {
		return nil, err
	}
	if err = snapshot.CopyFrom(l.list); err != nil {
		_ = snapshot.Destroy()
		return nil, err
	}
	return snapshot, nil
}

// Destroy locks l and destroys the underlying list.
func (l *List[K, T]) Destroy() error {
	unlock := l.lock()
	if unlock == nil {
		return errNilList("destroy")
	}
	defer unlock()
	tracer().Debugf("destroying guarded list with %d objects", l.list.Len())
	return l.list.Destroy()
}
