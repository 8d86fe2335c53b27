package indexed

import (
	"errors"
	"fmt"

	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/maybe"
	"github.com/npillmayer/zinc/refs"
	"golang.org/x/exp/slices"
)

// List is an indexed list of objects of type T, identified by keys of type K.
// Lists are created by New or by Registry.NewList.
type List[K any, T Object[K]] struct {
	props
	registry  *Registry[K, T]
	root      *xnode[K, T]
	count     int // number of objects in leaves
	height    int // 0 for an empty list, 1 for a leaf root
	nodes     int // number of index nodes currently allocated
	destroyed bool
}

// New creates an empty list, ordered by cmp, in a registry of its own.
// Use a shared Registry if identifiers of objects may change while they are
// members of more than one list.
func New[K any, T Object[K]](cmp ident.Comparator[K], opts ...Option) (*List[K, T], error) {
	reg, err := NewRegistry[K, T](cmp)
	if err != nil {
		return nil, err
	}
	return reg.NewList(opts...)
}

func (list *List[K, T]) usable(op string) error {
	if list == nil {
		return report(fmt.Errorf("%w: %s on nil list", ErrInvalidArgument, op))
	}
	if list.destroyed {
		return report(fmt.Errorf("%w: %s", ErrDestroyed, op))
	}
	return nil
}

func isNil[K any, T Object[K]](obj T) bool {
	var none T
	return obj == none
}

func (list *List[K, T]) compare() ident.Comparator[K] {
	return list.registry.compare
}

// Len returns the number of objects in the list.
func (list *List[K, T]) Len() int {
	if list == nil {
		return 0
	}
	return list.count
}

// Height returns the height of the tree, where 0 means empty and 1 means
// a single leaf.
func (list *List[K, T]) Height() int {
	if list == nil {
		return 0
	}
	return list.height
}

// Order returns the order of the tree underlying list.
func (list *List[K, T]) Order() int {
	if list == nil {
		return 0
	}
	return list.order
}

// Registry returns the registry list belongs to.
func (list *List[K, T]) Registry() *Registry[K, T] {
	if list == nil {
		return nil
	}
	return list.registry
}

// --- Insertion -------------------------------------------------------------

// Add inserts obj into the list and accesses it. It is an error to add an
// object whose identifier equals the identifier of a member; the list is
// left unchanged in this case.
func (list *List[K, T]) Add(obj T) error {
	if err := list.usable("add"); err != nil {
		return err
	}
	if isNil[K](obj) {
		return report(fmt.Errorf("%w: cannot add nil object", ErrInvalidArgument))
	}
	return list.add(obj)
}

func (list *List[K, T]) add(obj T) error {
	if list.root == nil { // virgin list => create a leaf root holding obj
		list.root = list.newLeaf()
		list.root.items = append(list.root.items, obj)
		list.height = 1
	} else if err := list.insert(obj); err != nil {
		return err
	}
	obj.IncRef()
	list.count++
	return nil
}

func (list *List[K, T]) insert(obj T) error {
	id := obj.Identifier()
	path, found := list.locate(id)
	if found {
		return report(fmt.Errorf("%w: %v", ErrDuplicateIdentifier, id))
	}
	tracer().Debugf("insert: slot path = %s", path)
	leaf := path.last()
	leaf.node.insertItemAt(obj, leaf.index)
	top := path.dropLast().foldR(list.splitOverfull, leaf)
	if top.node.overfull(list.props) { // split root => tree grows by one level
		root := list.newInner(top.node)
		list.splitChild(root, 0)
		list.root = root
		list.height++
		tracer().Debugf("insert: new root = %s, height = %d", root, list.height)
	}
	return nil
}

// splitOverfull splits child if it is overfull, propagating a new separator
// to parent.
func (list *List[K, T]) splitOverfull(parent, child slot[K, T]) slot[K, T] {
	if child.node.overfull(list.props) {
		list.splitChild(parent.node, parent.index)
	}
	return parent
}

// splitChild splits the child at position at of parent. The separator of
// the left half is inserted at position at, the new right sibling becomes
// child at+1 and inherits the former separator at position at.
func (list *List[K, T]) splitChild(parent *xnode[K, T], at int) {
	child := parent.children[at]
	sep, sibling := child.split(list.props)
	list.nodes++
	tracer().Debugf("split: %s | %s, separator %v", child, sibling, sep.Identifier())
	parent.items = slices.Insert(parent.items, at, sep)
	parent.children = slices.Insert(parent.children, at+1, sibling)
}

func (list *List[K, T]) newLeaf() *xnode[K, T] {
	list.nodes++
	return &xnode[K, T]{items: make([]T, 0, list.maxEntries()+1)}
}

func (list *List[K, T]) newInner(children ...*xnode[K, T]) *xnode[K, T] {
	list.nodes++
	node := &xnode[K, T]{
		items:    make([]T, 0, list.maxEntries()+1),
		children: make([]*xnode[K, T], 0, list.maxEntries()+2),
	}
	node.children = append(node.children, children...)
	return node
}

// --- Search ----------------------------------------------------------------

// locate descends from the root to the leaf which holds, or would hold, an
// object with identifier id. It returns the path of nodes and indices taken,
// and whether the leaf holds such an object.
func (list *List[K, T]) locate(id K) (slotPath[K, T], bool) {
	path := make(slotPath[K, T], 0, list.height)
	if list.root == nil {
		return path, false
	}
	cmp := list.compare()
	node := list.root
	for !node.isLeaf() {
		index := node.childIndex(id, cmp)
		path = append(path, slot[K, T]{node: node, index: index})
		node = node.children[index]
	}
	found, index := node.findSlot(id, cmp)
	path = append(path, slot[K, T]{node: node, index: index})
	return path, found
}

// contains checks for the identifier of obj and for identity of the member
// found with obj.
func (list *List[K, T]) contains(obj T) bool {
	path, found := list.locate(obj.Identifier())
	return found && path.last().item() == obj
}

// Contains reports whether obj is a member of the list.
func (list *List[K, T]) Contains(obj T) bool {
	if list.usable("contains") != nil || isNil[K](obj) {
		return false
	}
	defer list.registry.iterate()()
	return list.contains(obj)
}

// FindByIdentifier returns the member with identifier id, if any.
func (list *List[K, T]) FindByIdentifier(id K) maybe.Maybe[T] {
	if list.usable("find by identifier") != nil {
		return maybe.Nothing[T]()
	}
	defer list.registry.iterate()()
	path, found := list.locate(id)
	return maybe.Of(path.last().item(), found)
}

// FirstThat returns the first member, in identifier order, for which pred
// holds. A nil pred matches any object, i.e. FirstThat(nil) returns the
// member with the smallest identifier.
func (list *List[K, T]) FirstThat(pred func(T) bool) maybe.Maybe[T] {
	if list.usable("first that") != nil || list.root == nil {
		return maybe.Nothing[T]()
	}
	defer list.registry.iterate()()
	item, found := firstThat(list.root, pred)
	return maybe.Of(item, found)
}

func firstThat[K any, T Object[K]](node *xnode[K, T], pred func(T) bool) (T, bool) {
	if node.isLeaf() {
		for _, item := range node.items {
			if pred == nil || pred(item) {
				return item, true
			}
		}
		var none T
		return none, false
	}
	for _, child := range node.children {
		if item, ok := firstThat(child, pred); ok {
			return item, true
		}
	}
	var none T
	return none, false
}

// ForEach calls visit for every member, in identifier order. If visit returns
// an error, iteration stops and ForEach returns that error.
//
// visit must not add objects to or remove objects from the list.
func (list *List[K, T]) ForEach(visit func(T) error) error {
	if err := list.usable("for each"); err != nil {
		return err
	}
	if visit == nil {
		return report(fmt.Errorf("%w: for each with nil visitor", ErrInvalidArgument))
	}
	if list.root == nil {
		return nil
	}
	defer list.registry.iterate()()
	return forEach(list.root, visit)
}

func forEach[K any, T Object[K]](node *xnode[K, T], visit func(T) error) error {
	if node.isLeaf() {
		for _, item := range node.items {
			if err := visit(item); err != nil {
				return err
			}
		}
		return nil
	}
	for _, child := range node.children {
		if err := forEach(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// --- Removal ---------------------------------------------------------------

// Remove removes obj from the list and releases it.
func (list *List[K, T]) Remove(obj T) error {
	if err := list.usable("remove"); err != nil {
		return err
	}
	if isNil[K](obj) {
		return report(fmt.Errorf("%w: cannot remove nil object", ErrInvalidArgument))
	}
	return list.remove(obj)
}

func (list *List[K, T]) remove(obj T) error {
	id := obj.Identifier()
	path, found := list.locate(id)
	if !found || path.last().item() != obj {
		return report(fmt.Errorf("%w: %v", ErrNotInList, id))
	}
	tracer().Debugf("remove: slot path = %s", path)
	leaf := path.last()
	leaf.node.deleteItemAt(leaf.index)
	path.dropLast().foldR(list.unlink(obj), leaf)
	list.shrinkRoot()
	list.count--
	obj.DecRef()
	return nil
}

// unlink returns a folding step for removal of object removed: an emptied
// child is unlinked from its parent; a separator referring to removed is
// replaced by the rightmost object of the child subtree it delimits.
func (list *List[K, T]) unlink(removed T) func(slot[K, T], slot[K, T]) slot[K, T] {
	return func(parent, child slot[K, T]) slot[K, T] {
		if child.node.empty() {
			tracer().Debugf("remove: unlink empty child #%d of %s", parent.index, parent.node)
			parent.node.removeChild(parent.index)
			list.nodes--
		} else if parent.index < len(parent.node.items) && parent.node.items[parent.index] == removed {
			parent.node.items[parent.index] = child.node.rightmost()
			tracer().Debugf("remove: replaced separator with %v", parent.node.items[parent.index].Identifier())
		}
		return parent
	}
}

// shrinkRoot drops an empty root and collapses internal roots with a single
// child, reducing the height of the tree.
func (list *List[K, T]) shrinkRoot() {
	if list.root == nil {
		return
	}
	if list.root.empty() {
		list.root = nil
		list.height = 0
		list.nodes--
		return
	}
	for !list.root.isLeaf() && len(list.root.children) == 1 {
		list.root = list.root.children[0]
		list.height--
		list.nodes--
		tracer().Debugf("collapse: new root = %s, height = %d", list.root, list.height)
	}
}

// RemoveAll removes and releases all objects.
func (list *List[K, T]) RemoveAll() error {
	if err := list.usable("remove all"); err != nil {
		return err
	}
	root := list.root
	list.root, list.count, list.height, list.nodes = nil, 0, 0, 0
	return releaseTree(root)
}

// Destroy removes the list from its registry and releases all objects.
// A destroyed list may not be used anymore.
//
// Destroy checks the reference count of every member which is able to
// report it (see refs.Reader) before releasing it. Members without a
// reference left are reported with refs.ErrAccessCount and are not
// released a second time.
func (list *List[K, T]) Destroy() error {
	if err := list.usable("destroy"); err != nil {
		return err
	}
	list.registry.unregister(list)
	err := list.RemoveAll()
	list.destroyed = true
	return err
}

// releaseTree releases every object in the leaves below node.
func releaseTree[K any, T Object[K]](node *xnode[K, T]) error {
	if node == nil {
		return nil
	}
	var errs []error
	var release func(*xnode[K, T])
	release = func(n *xnode[K, T]) {
		if !n.isLeaf() {
			for _, child := range n.children {
				release(child)
			}
			return
		}
		for _, item := range n.items {
			if err := refs.Check(item); err != nil {
				errs = append(errs, report(err))
				continue
			}
			item.DecRef()
		}
	}
	release(node)
	return errors.Join(errs...)
}

// --- Copying ---------------------------------------------------------------

// CopyFrom replaces the contents of list with the objects of src. Objects are
// shared, not copied; list accesses each of them.
//
// If both lists belong to the same registry and have the same order, the
// node structure of src is duplicated. Otherwise the objects of src are
// re-inserted one by one, which fails if two of them have identifiers
// comparing equal under the comparator of list; list is left unchanged then.
func (list *List[K, T]) CopyFrom(src *List[K, T]) error {
	if err := list.usable("copy"); err != nil {
		return err
	}
	if err := src.usable("copy"); err != nil {
		return err
	}
	if list == src {
		return nil
	}
	scratch := &List[K, T]{props: list.props, registry: list.registry}
	if src.registry == list.registry && src.order == list.order {
		if src.root != nil {
			scratch.root = scratch.duplicate(src.root)
		}
		scratch.height, scratch.count = src.height, src.count
	} else if src.root != nil {
		err := forEach(src.root, scratch.add)
		if err != nil {
			_ = releaseTree(scratch.root)
			return err
		}
	}
	old := list.root
	list.root, list.count, list.height, list.nodes = scratch.root, scratch.count, scratch.height, scratch.nodes
	return releaseTree(old)
}

// duplicate copies the subtree at node, accessing every object in its leaves.
func (list *List[K, T]) duplicate(node *xnode[K, T]) *xnode[K, T] {
	if node.isLeaf() {
		leaf := list.newLeaf()
		leaf.items = append(leaf.items, node.items...)
		for _, item := range leaf.items {
			item.IncRef()
		}
		return leaf
	}
	inner := list.newInner()
	inner.items = append(inner.items, node.items...)
	for _, child := range node.children {
		inner.children = append(inner.children, list.duplicate(child))
	}
	return inner
}

// Clone creates a new list in the registry of list, holding the same objects.
func (list *List[K, T]) Clone() (*List[K, T], error) {
	if err := list.usable("clone"); err != nil {
		return nil, err
	}
	clone, err := list.registry.NewList(Order(list.order))
	if err != nil {
		return nil, err
	}
	if err = clone.CopyFrom(list); err != nil {
		_ = clone.Destroy()
		return nil, err
	}
	return clone, nil
}
