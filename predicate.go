package zinc

// Compose returns h = f . g
func Compose[A, B, C any](g func(a A) B, f func(b B) C) func(A) C {
	return func(a A) C {
		b := g(a)
		return f(b)
	}
}

// Always is a predicate which holds for any x.
func Always[T any](_ T) bool {
	return true
}

// Never is a predicate which holds for no x.
func Never[T any](_ T) bool {
	return false
}

// Not negates predicate p.
func Not[T any](p func(T) bool) func(T) bool {
	return func(x T) bool {
		return !p(x)
	}
}

// And returns a predicate which holds if all of ps hold. Evaluation stops
// at the first predicate which does not hold. And() holds for any x.
func And[T any](ps ...func(T) bool) func(T) bool {
	return func(x T) bool {
		for _, p := range ps {
			if !p(x) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate which holds if any of ps holds. Evaluation stops
// at the first predicate which holds. Or() holds for no x.
func Or[T any](ps ...func(T) bool) func(T) bool {
	return func(x T) bool {
		for _, p := range ps {
			if p(x) {
				return true
			}
		}
		return false
	}
}

// On lifts a predicate over a component of T to a predicate over T, e.g. a
// predicate over identifiers to a predicate over objects:
//
//	even := zinc.On((*Node).Identifier, func(id int) bool { return id%2 == 0 })
//	n, err := list.RemoveThat(even)
func On[T, F any](component func(T) F, p func(F) bool) func(T) bool {
	return Compose(component, p)
}
