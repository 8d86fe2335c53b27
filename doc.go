/*
Package zinc is the root of a collection of container packages for
reference counted model objects.

Sub-packages:

    indexed   ordered, indexed lists with identifier-change protocol
    refs      reference counting and leak checking
    ident     three-way comparators for identifiers
    maybe     optional values returned by lookups
    guarded   mutex-protected indexed lists

Package zinc itself provides predicate combinators for the conditional
operations of indexed lists (RemoveThat, FirstThat).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package zinc
