package indexed

// DefaultOrder is the order of lists created without an Order option:
// nodes hold up to 10 entries, internal nodes up to 11 children.
const DefaultOrder = 5

type props struct {
	order int
}

func (p props) init() props {
	if p.order <= 0 {
		p.order = DefaultOrder
	}
	return p
}

func (p props) maxEntries() int {
	return 2 * p.order
}

// Option is a type to help initializing lists at creation time.
type Option func(props) props

// Order is an option to set the order of the tree underlying a list.
// Nodes will hold up to 2*n entries. The lower bound for the order is 1.
//
// Use it like this:
//
//	list, err := reg.NewList(indexed.Order(16))
func Order(n int) Option {
	return func(p props) props {
		if n < 1 {
			n = 1
		}
		p.order = n
		return p
	}
}
