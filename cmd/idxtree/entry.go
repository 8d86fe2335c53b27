package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/indexed"
	"github.com/npillmayer/zinc/refs"
)

// entry is the object type the command line tool keeps in its lists.
type entry struct {
	refs.Refs
	key string
}

func newEntry(key string) *entry {
	e := &entry{key: key}
	e.InitRefs("entry")
	return e
}

func (e *entry) Identifier() string {
	return e.key
}

func (e *entry) DecRef() {
	if err := e.Refs.DecRef(nil); err != nil {
		tracer().Errorf("release of %q: %v", e.key, err)
	}
}

func (e *entry) String() string {
	return fmt.Sprintf("%q", e.key)
}

// numeric interprets a key as an integer. Keys which are not numbers have
// value 0.
func numeric(key string) int64 {
	n, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// keyOrder returns the comparator for keys: plain string order, or numeric
// order with string order breaking ties.
func keyOrder(byNumber bool) ident.Comparator[string] {
	if !byNumber {
		return ident.Strings
	}
	return ident.Lexical(ident.By(numeric, ident.Ordered[int64]), ident.Strings)
}

type entryList = indexed.List[string, *entry]

// buildList creates a list in reg holding a new entry per key.
func buildList(reg *indexed.Registry[string, *entry], order int, keys []string) (*entryList, []*entry, error) {
	list, err := reg.NewList(indexed.Order(order))
	if err != nil {
		return nil, nil, err
	}
	entries := make([]*entry, 0, len(keys))
	for _, key := range keys {
		e := newEntry(key)
		if err := list.Add(e); err != nil {
			e.DecRef()
			release(entries)
			_ = list.Destroy()
			return nil, nil, err
		}
		entries = append(entries, e)
	}
	return list, entries, nil
}

// release drops the creator's reference of every entry.
func release(entries []*entry) {
	for _, e := range entries {
		e.DecRef()
	}
}
