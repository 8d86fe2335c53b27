package refs

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counted struct {
	Refs
	name      string
	destroyed int
}

func newCounted(name string) *counted {
	c := &counted{name: name}
	c.InitRefs("counted")
	return c
}

func (c *counted) DecRef() {
	_ = c.Refs.DecRef(func() { c.destroyed++ })
}

var _ RefCounter = (*counted)(nil)

func TestRefsInitAndRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	defer teardown()
	//
	c := newCounted("a")
	assert.Equal(t, int64(1), c.ReadRefs())
	c.IncRef()
	c.IncRef()
	assert.Equal(t, int64(3), c.ReadRefs())
	c.DecRef()
	c.DecRef()
	assert.Equal(t, 0, c.destroyed, "object destroyed while still referenced")
	c.DecRef()
	assert.Equal(t, 1, c.destroyed)
	assert.Equal(t, int64(0), c.ReadRefs())
}

func TestRefsUnderflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	c := newCounted("b")
	require.NoError(t, c.Refs.DecRef(nil))
	err := c.Refs.DecRef(nil)
	if !errors.Is(err, ErrAccessCount) {
		t.Fatalf("expected ErrAccessCount for released object, got %v", err)
	}
	assert.Equal(t, int64(0), c.ReadRefs(), "count must not drop below zero")
}

func TestRefsCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	defer teardown()
	//
	c := newCounted("c")
	assert.NoError(t, Check(c))
	assert.NoError(t, Check("not counted"))
	c.DecRef()
	assert.ErrorIs(t, Check(c), ErrAccessCount)
}

func TestLeakCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	defer SetLeakMode(NoLeakChecking)
	defer ResetLeakCheck()
	//
	ResetLeakCheck()
	SetLeakMode(LeaksLogError)
	a := newCounted("a")
	b := newCounted("b")
	a.DecRef()
	leaks := DoLeakCheck()
	require.Len(t, leaks, 1)
	assert.Contains(t, leaks[0], "reference count of 1 instead of 0")
	b.DecRef()
	assert.Empty(t, DoLeakCheck())
}

func TestLeakCheckPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	defer SetLeakMode(NoLeakChecking)
	defer ResetLeakCheck()
	//
	ResetLeakCheck()
	SetLeakMode(LeaksPanic)
	_ = newCounted("leaky")
	assert.Panics(t, func() { DoLeakCheck() })
}

func TestNoLeakCheckingTracksNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.refs")
	defer teardown()
	//
	ResetLeakCheck()
	SetLeakMode(NoLeakChecking)
	_ = newCounted("untracked")
	assert.Nil(t, DoLeakCheck())
}
