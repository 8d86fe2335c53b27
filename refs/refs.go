package refs

import (
	"errors"
	"fmt"
)

// ErrAccessCount is flagged whenever a reference count is found to be out of
// range, e.g. when an object is released more often than it has been accessed.
var ErrAccessCount = errors.New("refs: access count out of range")

// RefCounter is the interface to be implemented by objects that are reference
// counted.
type RefCounter interface {
	// IncRef increments the reference counter on the object.
	IncRef()

	// DecRef decrements the reference counter on the object. Dropping the
	// last reference destroys the object.
	DecRef()
}

// Reader is implemented by reference counted objects which are able to
// report their current count.
type Reader interface {
	ReadRefs() int64
}

// Refs keeps a reference count and calls a destructor when the count
// reaches zero. The zero value holds no references; use InitRefs to
// hand out the first reference to the creator of an object.
//
// Refs is not safe for concurrent use.
type Refs struct {
	refCount int64
	label    string
}

// InitRefs initializes r with one reference and, if enabled, activates leak
// checking. label is used in diagnostic messages only.
func (r *Refs) InitRefs(label string) {
	r.refCount = 1
	r.label = label
	register(r)
}

// RefType implements CheckedObject.RefType.
func (r *Refs) RefType() string {
	if r.label == "" {
		return "object"
	}
	return r.label
}

// LeakMessage implements CheckedObject.LeakMessage.
func (r *Refs) LeakMessage() string {
	return fmt.Sprintf("[%s %p] reference count of %d instead of 0", r.RefType(), r, r.ReadRefs())
}

// ReadRefs returns the current number of references.
func (r *Refs) ReadRefs() int64 {
	return r.refCount
}

// IncRef implements RefCounter.IncRef.
func (r *Refs) IncRef() {
	r.refCount++
	if r.refCount <= 1 {
		tracer().Errorf("incrementing non-positive count %p on %s", r, r.RefType())
	}
}

// DecRef drops a reference and calls destroy if it was the last one.
// destroy may be nil.
//
// Releasing an object which holds no references leaves the count at zero
// and returns ErrAccessCount.
func (r *Refs) DecRef(destroy func()) error {
	if r.refCount <= 0 {
		err := fmt.Errorf("%w: decrementing non-positive count %p on %s", ErrAccessCount, r, r.RefType())
		tracer().Errorf("%v", err)
		return err
	}
	r.refCount--
	if r.refCount == 0 {
		unregister(r)
		if destroy != nil {
			destroy()
		}
	}
	return nil
}

// Check returns ErrAccessCount if obj is able to report its reference count
// and holds no reference. Objects not implementing Reader always pass.
func Check(obj any) error {
	rd, ok := obj.(Reader)
	if !ok {
		return nil
	}
	if n := rd.ReadRefs(); n < 1 {
		return fmt.Errorf("%w: %T has reference count %d", ErrAccessCount, obj, n)
	}
	return nil
}
