/*
Package ident provides three-way comparators for identifiers of objects stored
in indexed lists.

A comparator returns a negative number if a sorts before b, zero if a and b
are equal and a positive number if a sorts after b. Indexed lists order and
search their members exclusively through a comparator; they do not interpret
identifiers in any other way.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ident

import (
	"bytes"
	"strings"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Comparator is a three-way comparison over identifiers of type K.
type Comparator[K any] func(a, b K) int

// Strings compares string identifiers lexicographically, byte-wise.
func Strings(a, b string) int {
	return strings.Compare(a, b)
}

// Ordered compares identifiers of any ordered type.
// NaN values of floating point types sort before all other values.
func Ordered[N constraints.Ordered](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	// at least one NaN
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	}
	return 1
}

// Pointers orders identifiers by address. This is useful for objects
// which are identified by a pointer to another object; the resulting order
// is stable for the lifetime of the pointees, but otherwise arbitrary.
func Pointers[P any](a, b *P) int {
	pa, pb := uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b))
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	}
	return 0
}

// UUID compares UUIDs by their byte representation.
func UUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Reverse inverts the order of cmp.
func Reverse[K any](cmp Comparator[K]) Comparator[K] {
	return func(a, b K) int {
		return cmp(b, a)
	}
}

// By lifts a comparator for a component F of K to a comparator for K.
//
//	type Key struct { Region string; Number int }
//	byNumber := ident.By(func(k Key) int { return k.Number }, ident.Ordered[int])
func By[K, F any](component func(K) F, cmp Comparator[F]) Comparator[K] {
	return func(a, b K) int {
		return cmp(component(a), component(b))
	}
}

// Lexical combines comparators for composite identifiers: cmps are applied in
// turn and the first non-zero result wins.
//
//	cmp := ident.Lexical(
//		ident.By(func(k Key) string { return k.Region }, ident.Strings),
//		ident.By(func(k Key) int { return k.Number }, ident.Ordered[int]),
//	)
func Lexical[K any](cmps ...Comparator[K]) Comparator[K] {
	return func(a, b K) int {
		for _, cmp := range cmps {
			if c := cmp(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}
