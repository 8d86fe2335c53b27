package refs

import (
	"fmt"
	"sort"
	"sync"
)

// LeakMode configures the leak checker.
type LeakMode uint32

const (
	// NoLeakChecking indicates that no effort should be made to check for
	// leaks.
	NoLeakChecking LeakMode = iota

	// LeaksLogError indicates that leaks should be reported as errors to the
	// tracer.
	LeaksLogError

	// LeaksPanic indicates that a panic should be issued when leaks are found.
	LeaksPanic
)

// CheckedObject represents a reference-counted object with an informative
// leak detection message.
type CheckedObject interface {
	// RefType is the type of the reference-counted object.
	RefType() string

	// LeakMessage supplies a warning to be printed upon leak detection.
	LeakMessage() string
}

var (
	// liveObjects holds objects registered while leak checking was enabled.
	// It is protected by liveObjectsMu.
	liveObjects   = make(map[CheckedObject]struct{})
	liveObjectsMu sync.Mutex
	leakMode      LeakMode
)

// SetLeakMode configures the leak checker. Switching modes does not reset the
// set of already tracked objects; use ResetLeakCheck for that.
func SetLeakMode(mode LeakMode) {
	liveObjectsMu.Lock()
	defer liveObjectsMu.Unlock()
	leakMode = mode
}

// GetLeakMode returns the current leak mode.
func GetLeakMode() LeakMode {
	liveObjectsMu.Lock()
	defer liveObjectsMu.Unlock()
	return leakMode
}

// ResetLeakCheck forgets every tracked object.
func ResetLeakCheck() {
	liveObjectsMu.Lock()
	defer liveObjectsMu.Unlock()
	liveObjects = make(map[CheckedObject]struct{})
}

// Register adds obj to the live object map, if leak checking is enabled.
func Register(obj CheckedObject) {
	register(obj)
}

func register(obj CheckedObject) {
	liveObjectsMu.Lock()
	defer liveObjectsMu.Unlock()
	if leakMode == NoLeakChecking {
		return
	}
	if _, ok := liveObjects[obj]; ok {
		tracer().Errorf("unexpected entry in leak checking map: reference %p already added", obj)
		return
	}
	liveObjects[obj] = struct{}{}
}

func unregister(obj CheckedObject) {
	liveObjectsMu.Lock()
	defer liveObjectsMu.Unlock()
	delete(liveObjects, obj)
}

// DoLeakCheck reports every tracked object which is still alive and returns
// the leak messages, sorted. It should be called when no reference counted
// objects are reachable anymore, at which point anything left is considered
// a leak.
func DoLeakCheck() []string {
	liveObjectsMu.Lock()
	mode := leakMode
	msgs := make([]string, 0, len(liveObjects))
	for obj := range liveObjects {
		msgs = append(msgs, obj.LeakMessage())
	}
	liveObjectsMu.Unlock()
	if len(msgs) == 0 || mode == NoLeakChecking {
		return nil
	}
	sort.Strings(msgs)
	msg := fmt.Sprintf("leak checking detected %d leaked objects", len(msgs))
	for _, m := range msgs {
		msg += "\n" + m
	}
	if mode == LeaksPanic {
		panic(msg)
	}
	tracer().Errorf("%s", msg)
	return msgs
}
