package indexed

import "fmt"

// Check validates the structural invariants of list:
//
//   - objects in leaves are strictly ordered by identifier,
//   - all leaves are at the same depth, which equals the height of the list,
//   - internal nodes have one child more than separators,
//   - separator i is the greatest object of child subtree i,
//   - no node holds more than 2*ORDER entries, and no node is empty,
//   - an internal root has at least two children,
//   - the count of objects and of index nodes matches the tree.
//
// Check is meant for tests and diagnostics.
func (list *List[K, T]) Check() error {
	if list == nil {
		return fmt.Errorf("%w: nil list", ErrInvalidArgument)
	}
	if list.root == nil {
		if list.count != 0 || list.height != 0 || list.nodes != 0 {
			return fmt.Errorf("%w: empty list with count=%d, height=%d, nodes=%d",
				ErrStructure, list.count, list.height, list.nodes)
		}
		return nil
	}
	c := &checker[K, T]{list: list}
	items, height, err := c.checkNode(list.root, true)
	if err != nil {
		return err
	}
	if items != list.count {
		return fmt.Errorf("%w: count mismatch (%d != %d)", ErrStructure, items, list.count)
	}
	if height != list.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrStructure, height, list.height)
	}
	if c.nodes != list.nodes {
		return fmt.Errorf("%w: node count mismatch (%d != %d)", ErrStructure, c.nodes, list.nodes)
	}
	return nil
}

type checker[K any, T Object[K]] struct {
	list  *List[K, T]
	last  T    // last object seen, in traversal order
	seen  bool // any object seen yet?
	nodes int
}

func (c *checker[K, T]) checkNode(node *xnode[K, T], isRoot bool) (items int, height int, err error) {
	if node == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrStructure)
	}
	c.nodes++
	if node.overfull(c.list.props) {
		return 0, 0, fmt.Errorf("%w: node %s exceeds %d entries", ErrStructure, node, c.list.maxEntries())
	}
	if node.isLeaf() {
		if len(node.items) == 0 {
			return 0, 0, fmt.Errorf("%w: empty leaf", ErrStructure)
		}
		cmp := c.list.compare()
		for _, item := range node.items {
			if c.seen && cmp(c.last.Identifier(), item.Identifier()) >= 0 {
				return 0, 0, fmt.Errorf("%w: %v not ordered after %v", ErrStructure,
					item.Identifier(), c.last.Identifier())
			}
			c.last, c.seen = item, true
		}
		return len(node.items), 1, nil
	}
	if len(node.children) == 0 {
		return 0, 0, fmt.Errorf("%w: internal node %s has no children", ErrStructure, node)
	}
	if len(node.children) != len(node.items)+1 {
		return 0, 0, fmt.Errorf("%w: internal node %s has %d children", ErrStructure,
			node, len(node.children))
	}
	if isRoot && len(node.children) == 1 {
		return 0, 0, fmt.Errorf("%w: internal root with single child", ErrStructure)
	}
	var childHeight int
	for i, child := range node.children {
		cItems, cHeight, cErr := c.checkNode(child, false)
		if cErr != nil {
			return 0, 0, cErr
		}
		items += cItems
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrStructure)
		}
		if i < len(node.items) && node.items[i] != child.rightmost() {
			return 0, 0, fmt.Errorf("%w: separator %v of %s is not greatest object of child %d",
				ErrStructure, node.items[i].Identifier(), node, i)
		}
	}
	return items, childHeight + 1, nil
}
