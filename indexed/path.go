package indexed

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Slot ------------------------------------------------------------------

// slot holds a step of a path: a node and the index of an entry or child
// within it.
type slot[K any, T Object[K]] struct {
	node  *xnode[K, T]
	index int
}

func (s slot[K, T]) String() string {
	return strconv.Itoa(s.index) + "@" + s.node.String()
}

func (s slot[K, T]) item() T {
	if s.node == nil || s.index >= len(s.node.items) {
		var none T
		return none
	}
	return s.node.items[s.index]
}

// --- Path ------------------------------------------------------------------

// slotPath records the steps from the root of a tree down to a leaf.
type slotPath[K any, T Object[K]] []slot[K, T]

func (path slotPath[K, T]) String() string {
	var sb = strings.Builder{}
	sb.WriteRune('[')
	for _, s := range path {
		sb.WriteString(fmt.Sprintf("⟨%s⟩", s))
	}
	sb.WriteRune(']')
	return sb.String()
}

func (path slotPath[K, T]) last() slot[K, T] {
	if len(path) == 0 {
		return slot[K, T]{}
	}
	return path[len(path)-1]
}

// foldR folds f over path from the leaf upwards, starting with zero.
// f receives a parent slot and the result of folding the steps below it.
func (path slotPath[K, T]) foldR(f func(slot[K, T], slot[K, T]) slot[K, T], zero slot[K, T]) slot[K, T] {
	r := zero
	for i := len(path) - 1; i >= 0; i-- {
		r = f(path[i], r)
	}
	return r
}

func (path slotPath[K, T]) dropLast() slotPath[K, T] {
	if len(path) == 0 {
		return path
	}
	return path[:len(path)-1]
}
