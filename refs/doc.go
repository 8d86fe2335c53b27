/*
Package refs implements reference counting for objects which are shared between
indexed lists and other owners.

An object stored in an indexed list is "accessed" by the list for as long as it
is a member: the list increments the object's reference count on insertion and
decrements it on removal. The list never assumes to be the only owner of an
object. Clients usually embed Refs into their object types:

    type Field struct {
        refs.Refs
        name string
    }

    func (f *Field) DecRef() {
        f.Refs.DecRef(f.destroy)
    }

Leak checking may be switched on with SetLeakMode. Objects initialized while
leak checking is active are tracked until their count drops to zero;
DoLeakCheck reports every object still alive.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package refs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'zinc.refs'.
func tracer() tracing.Trace {
	return tracing.Select("zinc.refs")
}
