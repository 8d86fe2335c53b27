/*
Package indexed implements indexed lists: ordered associative containers for
reference counted objects, keyed by an identifier intrinsic to each object.

An indexed list is a multiway search tree of order ORDER (default 5). Leaves
hold up to 2*ORDER objects; internal nodes hold up to 2*ORDER separators and
one more child than separators. Separator i of an internal node is the
greatest object of child subtree i. Every object appears exactly once in a
leaf; separators are additional, uncounted references to leaf objects.

Objects are ordered by a client-supplied three-way comparator over their
identifiers (see package ident). Identifiers are unique within a list.

Ownership

A list holds one counted reference to each of its members: objects are
accessed (IncRef) when added and released (DecRef) when removed, or when the
list is cleared or destroyed. A list never assumes to be the only owner of an
object.

Identifier changes

Lists are created from a Registry, which is associated with one object type
and one comparator. Changing the identifier of an object while it is a member
of a list corrupts that list's order. To change an identifier safely, clients
run the identifier-change protocol of the registry:

    change, err := reg.BeginChange(obj)   // detaches obj from all lists
    obj.id = newID
    err = change.End()                    // re-inserts obj under its new id

Iterations (ForEach, FirstThat, Contains, FindByIdentifier, RemoveThat) mark
the registry as busy for their duration; BeginChange and End refuse to run
while an iteration is in progress.

Indexed lists are not safe for concurrent use. Clients sharing lists between
goroutines have to provide mutual exclusion, e.g. with package guarded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package indexed

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'zinc.indexed'.
func tracer() tracing.Trace {
	return tracing.Select("zinc.indexed")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("indexed: "+msg, msgargs...)
		panic(msg)
	}
}

// report traces err as an error and returns it.
func report(err error) error {
	tracer().Errorf("%v", err)
	return err
}
