package maybe_test

import (
	"testing"

	. "github.com/npillmayer/zinc/maybe"
)

func TestMaybeSimple(t *testing.T) {
	x := Just(7) // infers type
	y := Nothing[int]()

	var v int
	switch m := x.Match(); m {
	case m.Just(&v):
		t.Logf("Just(%d)", v)
	case m.Nothing():
		t.Logf("Nothing")
	}
	if v != 7 {
		t.Errorf("expected v to be 7, is %#v", v)
	}

	var w int
	nothing := false
	switch m := y.Match(); m {
	case m.Just(&w):
		t.Logf("Just(%d)", w)
	case m.Nothing():
		nothing = true
	}
	if w != 0 || !nothing {
		t.Errorf("expected Nothing to match, got w=%#v", w)
	}
}

func TestMaybeGet(t *testing.T) {
	if v, ok := Just("node").Get(); !ok || v != "node" {
		t.Errorf("expected Just(node).Get() to return node, got %q/%v", v, ok)
	}
	if v, ok := Nothing[string]().Get(); ok || v != "" {
		t.Errorf("expected Nothing.Get() to be empty, got %q/%v", v, ok)
	}
	if !Of(3, false).IsNothing() {
		t.Error("expected Of(3, false) to be Nothing")
	}
	if Of(3, true).IsNothing() {
		t.Error("expected Of(3, true) to be Just 3")
	}
}

func TestMaybeWithDefault(t *testing.T) {
	if xx := Just(7).WithDefault(100); xx != 7 {
		t.Errorf("expected Just(7) to have value 7, has %d", xx)
	}
	if yy := Nothing[int]().WithDefault(100); yy != 100 {
		t.Errorf("expected Nothing to default to 100, is %d", yy)
	}
}

func TestMaybeAndThen(t *testing.T) {
	gt0 := func(n int) Maybe[bool] {
		if n > 0 {
			return Just(true)
		}
		return Nothing[bool]()
	}
	if v, ok := AndThen(gt0, Just(7)).Get(); !ok || !v {
		t.Error("expected Just(7) |> andThen(gt0) to be true, isn't")
	}
	if !AndThen(gt0, Just(-1)).IsNothing() {
		t.Error("expected Just(-1) |> andThen(gt0) to be Nothing")
	}
	if !AndThen(gt0, Nothing[int]()).IsNothing() {
		t.Error("expected Nothing |> andThen(gt0) to be Nothing")
	}
}
