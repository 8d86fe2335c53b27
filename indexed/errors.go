package indexed

import "errors"

var (
	// ErrInvalidArgument signals a nil list, object, comparator or callback.
	ErrInvalidArgument = errors.New("indexed: invalid argument")
	// ErrDuplicateIdentifier signals an attempt to add an object whose identifier
	// equals the identifier of a member.
	ErrDuplicateIdentifier = errors.New("indexed: duplicate identifier")
	// ErrNotInList signals an attempt to remove an object which is not a member.
	ErrNotInList = errors.New("indexed: object not in list")
	// ErrIterationInProgress signals an identifier change attempted while
	// lists of the registry are being iterated.
	ErrIterationInProgress = errors.New("indexed: iteration in progress")
	// ErrDestroyed signals the use of a destroyed list.
	ErrDestroyed = errors.New("indexed: list has been destroyed")
	// ErrChangeClosed signals that an identifier change has already been ended.
	ErrChangeClosed = errors.New("indexed: identifier change already ended")
	// ErrStructure signals a violation of the tree invariants, found by Check.
	ErrStructure = errors.New("indexed: structural inconsistency")
)
