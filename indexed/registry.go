package indexed

import (
	"errors"
	"fmt"

	"github.com/npillmayer/zinc/ident"
	"golang.org/x/exp/slices"
)

// Registry keeps track of all lists for one type of object, ordered by one
// comparator. It coordinates identifier changes of objects (see BeginChange)
// and guards them against concurrent iterations.
type Registry[K any, T Object[K]] struct {
	compare   ident.Comparator[K]
	lists     []*List[K, T]
	iterating int // number of iterations in progress
}

// NewRegistry creates a registry for lists ordered by cmp.
func NewRegistry[K any, T Object[K]](cmp ident.Comparator[K]) (*Registry[K, T], error) {
	if cmp == nil {
		return nil, report(fmt.Errorf("%w: registry without comparator", ErrInvalidArgument))
	}
	return &Registry[K, T]{compare: cmp}, nil
}

// NewList creates an empty list and registers it.
func (reg *Registry[K, T]) NewList(opts ...Option) (*List[K, T], error) {
	if reg == nil {
		return nil, report(fmt.Errorf("%w: new list in nil registry", ErrInvalidArgument))
	}
	p := props{}
	for _, option := range opts {
		p = option(p)
	}
	list := &List[K, T]{props: p.init(), registry: reg}
	reg.lists = append(reg.lists, list)
	return list, nil
}

func (reg *Registry[K, T]) unregister(list *List[K, T]) {
	if i := slices.Index(reg.lists, list); i >= 0 {
		copy(reg.lists[i:], reg.lists[i+1:])
		reg.lists = truncate(reg.lists, len(reg.lists)-1)
	}
}

// Comparator returns the comparator lists of reg are ordered by.
func (reg *Registry[K, T]) Comparator() ident.Comparator[K] {
	if reg == nil {
		return nil
	}
	return reg.compare
}

// Lists returns the number of live lists in the registry.
func (reg *Registry[K, T]) Lists() int {
	if reg == nil {
		return 0
	}
	return len(reg.lists)
}

// Iterating reports whether an iteration over one of the lists of reg is
// in progress.
func (reg *Registry[K, T]) Iterating() bool {
	return reg != nil && reg.iterating > 0
}

// iterate marks an iteration as in progress. The returned function has to be
// called when the iteration is done, usually deferred:
//
//	defer reg.iterate()()
func (reg *Registry[K, T]) iterate() func() {
	reg.iterating++
	return func() {
		reg.iterating--
	}
}

// --- Identifier changes ----------------------------------------------------

// Change is a ticket for an identifier change of an object. It records the
// lists the object has been detached from.
type Change[K any, T Object[K]] struct {
	registry *Registry[K, T]
	object   T
	lists    []*List[K, T]
	closed   bool
}

// BeginChange prepares obj for a change of its identifier. obj is accessed
// for the duration of the change and removed from every list of reg it is
// a member of. The client may then change the identifier of obj and has to
// call End on the returned ticket afterwards.
//
// BeginChange fails with ErrIterationInProgress if an iteration over a list
// of reg is in progress.
func (reg *Registry[K, T]) BeginChange(obj T) (*Change[K, T], error) {
	if reg == nil {
		return nil, report(fmt.Errorf("%w: begin change in nil registry", ErrInvalidArgument))
	}
	if isNil[K](obj) {
		return nil, report(fmt.Errorf("%w: begin change of nil object", ErrInvalidArgument))
	}
	if reg.iterating > 0 {
		return nil, report(fmt.Errorf("%w: cannot begin identifier change of %v",
			ErrIterationInProgress, obj.Identifier()))
	}
	obj.IncRef()
	change := &Change[K, T]{registry: reg, object: obj}
	for _, list := range reg.lists {
		if list.root == nil || !list.contains(obj) {
			continue
		}
		err := list.remove(obj)
		assertThat(err == nil, "cannot detach member %v: %v", obj.Identifier(), err)
		change.lists = append(change.lists, list)
	}
	tracer().Debugf("begin change of %v: detached from %d lists", obj.Identifier(), len(change.lists))
	return change, nil
}

// Object returns the object whose identifier is being changed.
func (change *Change[K, T]) Object() T {
	if change == nil {
		var none T
		return none
	}
	return change.object
}

// Lists returns the number of lists the object has been detached from.
func (change *Change[K, T]) Lists() int {
	if change == nil {
		return 0
	}
	return len(change.lists)
}

// End re-inserts the object of change into every list it has been detached
// from, now ordered by its new identifier, and releases the access taken by
// BeginChange.
//
// End fails with ErrIterationInProgress if an iteration is in progress; the
// change stays open in this case and End may be called again. Otherwise the
// change is closed, even if re-inserting fails for some lists, e.g. because
// the new identifier collides with that of another member. These failures
// are returned, joined.
func (change *Change[K, T]) End() error {
	if change == nil {
		return report(fmt.Errorf("%w: end of nil change", ErrInvalidArgument))
	}
	if change.closed {
		return report(fmt.Errorf("%w: %v", ErrChangeClosed, change.object.Identifier()))
	}
	if change.registry.iterating > 0 {
		return report(fmt.Errorf("%w: cannot end identifier change of %v",
			ErrIterationInProgress, change.object.Identifier()))
	}
	var errs []error
	for _, list := range change.lists {
		if list.destroyed {
			errs = append(errs, report(fmt.Errorf("%w: cannot re-insert %v",
				ErrDestroyed, change.object.Identifier())))
			continue
		}
		if err := list.add(change.object); err != nil {
			errs = append(errs, err)
		}
	}
	change.closed = true
	tracer().Debugf("end change of %v: re-inserted into %d of %d lists",
		change.object.Identifier(), len(change.lists)-len(errs), len(change.lists))
	change.object.DecRef()
	return errors.Join(errs...)
}
