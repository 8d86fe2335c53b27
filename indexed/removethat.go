package indexed

import "fmt"

// RemoveThat removes and releases every member for which pred holds, in a
// single pass over the tree. It returns the number of objects removed.
//
// pred is called once per member, in identifier order. It must not add
// objects to or remove objects from the list.
func (list *List[K, T]) RemoveThat(pred func(T) bool) (int, error) {
	if err := list.usable("remove that"); err != nil {
		return 0, err
	}
	if pred == nil {
		return 0, report(fmt.Errorf("%w: remove that with nil predicate", ErrInvalidArgument))
	}
	if list.root == nil {
		return 0, nil
	}
	defer list.registry.iterate()()
	n := list.removeThat(list.root, pred)
	list.shrinkRoot()
	list.count -= n
	tracer().Debugf("remove that: removed %d objects, %d left", n, list.count)
	return n, nil
}

// removeThat works bottom-up: emptied children are dropped, separators are
// re-established from the surviving children. Separators are accessed while
// the subtrees below are processed, as releasing a leaf object may destroy
// it while a separator still refers to it.
func (list *List[K, T]) removeThat(node *xnode[K, T], pred func(T) bool) int {
	if node.isLeaf() {
		var removed []T
		kept := node.items[:0]
		for _, item := range node.items {
			if pred(item) {
				removed = append(removed, item)
			} else {
				kept = append(kept, item)
			}
		}
		node.items = truncate(node.items, len(kept))
		for _, item := range removed {
			item.DecRef()
		}
		return len(removed)
	}
	held := make([]T, len(node.items))
	copy(held, node.items)
	for _, sep := range held {
		sep.IncRef()
	}
	n := 0
	for _, child := range node.children {
		n += list.removeThat(child, pred)
	}
	children := node.children[:0]
	for _, child := range node.children {
		if child.empty() {
			list.nodes--
			continue
		}
		children = append(children, child)
	}
	node.children = truncate(node.children, len(children))
	node.items = truncate(node.items, 0)
	for i := 0; i < len(node.children)-1; i++ {
		node.items = append(node.items, node.children[i].rightmost())
	}
	for _, sep := range held {
		sep.DecRef()
	}
	return n
}
