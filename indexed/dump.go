package indexed

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the node structure of list, for diagnostics. Leaves are
// printed as ⟨…⟩, internal nodes as ⟦…⟧ with their separators.
func (list *List[K, T]) Dump() string {
	if list == nil {
		return "List(nil)\n"
	}
	header := fmt.Sprintf("List(count=%d height=%d order=%d)\n", list.count, list.height, list.order)
	p := tp.New()
	ppt(p, list.root)
	return header + p.String()
}

func ppt[K any, T Object[K]](p tp.Tree, node *xnode[K, T]) {
	if node == nil {
		return
	}
	if node.isLeaf() {
		p.AddNode(node.String())
		return
	}
	branch := p.AddBranch(node.String())
	for _, ch := range node.children {
		ppt(branch, ch)
	}
}
