package indexed

import (
	"fmt"
	"testing"

	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/refs"
)

// item is a reference counted test object, identified by an int.
type item struct {
	refs.Refs
	id        int
	destroyed bool
}

func newItem(id int) *item {
	it := &item{id: id}
	it.InitRefs("item")
	return it
}

func (it *item) Identifier() int {
	return it.id
}

func (it *item) DecRef() {
	_ = it.Refs.DecRef(func() {
		it.destroyed = true
	})
}

func (it *item) String() string {
	return fmt.Sprintf("item(%d)", it.id)
}

func newIntList(t *testing.T, opts ...Option) *List[int, *item] {
	t.Helper()
	list, err := New[int, *item](ident.Ordered[int], opts...)
	if err != nil {
		t.Fatalf("cannot create list: %v", err)
	}
	return list
}

// fill adds new items with identifiers ids to list, in the order given.
func fill(t *testing.T, list *List[int, *item], ids ...int) []*item {
	t.Helper()
	items := make([]*item, len(ids))
	for i, id := range ids {
		items[i] = newItem(id)
		if err := list.Add(items[i]); err != nil {
			t.Fatalf("cannot add item %d: %v", id, err)
		}
	}
	return items
}

// identifiers collects the identifiers of the members of list, in iteration order.
func identifiers(t *testing.T, list *List[int, *item]) []int {
	t.Helper()
	ids := []int{}
	err := list.ForEach(func(it *item) error {
		ids = append(ids, it.id)
		return nil
	})
	if err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	return ids
}

func upTo(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}
