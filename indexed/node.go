package indexed

import (
	"fmt"
	"strings"

	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/refs"
	"golang.org/x/exp/slices"
)

// Object is the constraint for types stored in indexed lists. Objects are
// reference counted, expose an identifier and are compared for identity
// with ==; usually T is a pointer type.
type Object[K any] interface {
	comparable
	refs.RefCounter
	Identifier() K
}

// xnode is an index node. A leaf holds objects and has no children.
// An internal node holds separators, where items[i] is the greatest
// object of the subtree at children[i]; it always has one child more
// than separators (transiently, it may have none while being removed).
type xnode[K any, T Object[K]] struct {
	items    []T
	children []*xnode[K, T] // nil for leaves
}

func (node *xnode[K, T]) isLeaf() bool {
	return node.children == nil
}

// empty reports whether a leaf holds no objects, or an internal node has
// lost all of its children.
func (node *xnode[K, T]) empty() bool {
	if node.isLeaf() {
		return len(node.items) == 0
	}
	return len(node.children) == 0
}

func (node *xnode[K, T]) overfull(p props) bool {
	return len(node.items) > p.maxEntries()
}

// findSlot searches id within the entries of node. It returns whether an
// entry with identifier id is present, together with its position or the
// position where it would be inserted.
func (node *xnode[K, T]) findSlot(id K, cmp ident.Comparator[K]) (bool, int) {
	inx, found := slices.BinarySearchFunc(node.items, id, func(item T, id K) int {
		return cmp(item.Identifier(), id)
	})
	return found, inx
}

// childIndex returns the index of the child whose key interval contains id.
func (node *xnode[K, T]) childIndex(id K, cmp ident.Comparator[K]) int {
	_, inx := node.findSlot(id, cmp)
	assertThat(inx < len(node.children), "child index %d out of range for %d children", inx, len(node.children))
	return inx
}

func (node *xnode[K, T]) insertItemAt(item T, at int) {
	assertThat(at <= len(node.items), "given item index out of range: %d < %d", len(node.items), at)
	node.items = slices.Insert(node.items, at, item)
}

func (node *xnode[K, T]) deleteItemAt(at int) T {
	assertThat(at < len(node.items), "given item index out of range: %d ≤ %d", len(node.items), at)
	item := node.items[at]
	copy(node.items[at:], node.items[at+1:])
	node.items = truncate(node.items, len(node.items)-1)
	return item
}

// removeChild unlinks child at, together with the separator which no longer
// delimits an interval. If the last child is removed, its left neighbour
// becomes the last child and loses its separator.
func (node *xnode[K, T]) removeChild(at int) {
	assertThat(!node.isLeaf(), "attempt to remove child from leaf")
	assertThat(at < len(node.children), "child index out of range: %d ≤ %d", len(node.children), at)
	copy(node.children[at:], node.children[at+1:])
	node.children = truncate(node.children, len(node.children)-1)
	if len(node.items) == 0 {
		return
	}
	if at == len(node.items) {
		at--
	}
	node.deleteItemAt(at)
}

// split halves an overfull node. node keeps the lower half, the upper half
// is moved to a new right sibling. split returns the separator for node,
// which is to be inserted into the parent, together with the sibling.
//
// A leaf with 2*order+1 objects keeps order+1 of them, its greatest object
// becomes the separator. An internal node with 2*order+1 separators keeps
// order separators and order+1 children; its median separator moves up.
func (node *xnode[K, T]) split(p props) (T, *xnode[K, T]) {
	assertThat(node.overfull(p), "attempt to split node which is not overfull")
	order := p.order
	sibling := &xnode[K, T]{items: make([]T, 0, p.maxEntries()+1)}
	if node.isLeaf() {
		sibling.items = append(sibling.items, node.items[order+1:]...)
		node.items = truncate(node.items, order+1)
		return node.items[order], sibling
	}
	sep := node.items[order]
	sibling.items = append(sibling.items, node.items[order+1:]...)
	sibling.children = make([]*xnode[K, T], 0, p.maxEntries()+2)
	sibling.children = append(sibling.children, node.children[order+1:]...)
	node.items = truncate(node.items, order)
	node.children = truncate(node.children, order+1)
	return sep, sibling
}

// rightmost returns the greatest object of the subtree rooted at node.
func (node *xnode[K, T]) rightmost() T {
	for !node.isLeaf() {
		assertThat(len(node.children) > 0, "internal node without children")
		node = node.children[len(node.children)-1]
	}
	assertThat(len(node.items) > 0, "rightmost object of empty leaf")
	return node.items[len(node.items)-1]
}

func (node *xnode[K, T]) String() string {
	if node == nil {
		return "⟨⟩"
	}
	var sb strings.Builder
	lb, rb := "⟨", "⟩"
	if !node.isLeaf() {
		lb, rb = "⟦", "⟧"
	}
	sb.WriteString(lb)
	for i, item := range node.items {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(fmt.Sprintf("%v", item.Identifier()))
	}
	sb.WriteString(rb)
	return sb.String()
}

// truncate shortens s to length n and clears the abandoned entries, so that
// no references to objects or nodes are retained.
func truncate[S ~[]E, E any](s S, n int) S {
	var zero E
	for i := n; i < len(s); i++ {
		s[i] = zero
	}
	return s[:n]
}
