package indexed

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/zinc/ident"
)

func leafOf(ids ...int) *xnode[int, *item] {
	node := &xnode[int, *item]{}
	for _, id := range ids {
		node.items = append(node.items, newItem(id))
	}
	return node
}

func TestFindInNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.indexed")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	cmp := ident.Ordered[int]
	node := leafOf(1, 2, 3, 4, 5, 6, 7, 8, 9)
	found, at := node.findSlot(7, cmp)
	if !found || at != 6 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("1: expected findSlot to find 7 at position 6, didn't")
	}
	node = leafOf(1, 2, 3, 4, 5, 6, 8, 9)
	found, at = node.findSlot(7, cmp)
	if found || at != 6 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("2: expected findSlot to find empty slot for 7 at position 6, didn't")
	}
	node = leafOf()
	found, at = node.findSlot(7, cmp)
	if found || at != 0 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("3: expected empty.findSlot to find empty slot for 7 at position 0, didn't")
	}
	node = leafOf(1, 2, 3, 4, 5, 6)
	found, at = node.findSlot(7, cmp)
	if found || at != 6 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("4: expected findSlot to find empty slot for 7 at final position 6, didn't")
	}
}

func TestSplitLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.indexed")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	p := Order(2)(props{})
	node := leafOf(1, 2, 3, 4, 5)
	sep, sibling := node.split(p)
	if sep.id != 3 {
		t.Errorf("expected separator to be 3, is %d", sep.id)
	}
	if node.String() != "⟨1 2 3⟩" || sibling.String() != "⟨4 5⟩" {
		t.Errorf("expected split into ⟨1 2 3⟩ and ⟨4 5⟩, have %s and %s", node, sibling)
	}
	if cap(node.items) >= 5 && node.items[:5][4] != nil {
		t.Error("expected abandoned slots of split leaf to be cleared")
	}
}

func TestSplitInner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.indexed")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	p := Order(1)(props{})
	inner := leafOf(2, 4, 6)
	inner.children = []*xnode[int, *item]{
		leafOf(1, 2), leafOf(3, 4), leafOf(5, 6), leafOf(7),
	}
	sep, sibling := inner.split(p)
	if sep.id != 4 {
		t.Errorf("expected median separator 4 to move up, have %d", sep.id)
	}
	if len(inner.items) != 1 || len(inner.children) != 2 {
		t.Errorf("expected left half with 1 separator and 2 children, have %s with %d children",
			inner, len(inner.children))
	}
	if sibling.String() != "⟦6⟧" || len(sibling.children) != 2 {
		t.Errorf("expected right half ⟦6⟧ with 2 children, have %s with %d children",
			sibling, len(sibling.children))
	}
}

func TestRemoveChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.indexed")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	inner := leafOf(2, 4)
	inner.children = []*xnode[int, *item]{leafOf(1, 2), leafOf(3, 4), leafOf(5)}
	inner.removeChild(2)
	if inner.String() != "⟦2⟧" || len(inner.children) != 2 {
		t.Errorf("expected ⟦2⟧ with 2 children after removing last child, have %s", inner)
	}
	inner.removeChild(0)
	if inner.String() != "⟦⟧" || len(inner.children) != 1 {
		t.Errorf("expected ⟦⟧ with single child, have %s", inner)
	}
	if inner.rightmost().id != 4 {
		t.Errorf("expected rightmost object to be 4, is %d", inner.rightmost().id)
	}
}

func TestTruncateClearsTail(t *testing.T) {
	s := []*item{newItem(1), newItem(2), newItem(3)}
	s = truncate(s, 1)
	if len(s) != 1 || s[:3][1] != nil || s[:3][2] != nil {
		t.Errorf("expected truncated slice to have cleared tail, is %v", s[:3])
	}
}
