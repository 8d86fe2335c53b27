package guarded

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/zinc/ident"
	"github.com/npillmayer/zinc/indexed"
	"github.com/npillmayer/zinc/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	refs.Refs
	no int
}

func newAccount(no int) *account {
	a := &account{no: no}
	a.InitRefs("account")
	return a
}

func (a *account) Identifier() int { return a.no }

func (a *account) DecRef() { _ = a.Refs.DecRef(nil) }

func TestConcurrentAdd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.guarded")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	reg, err := NewRegistry[int, *account](ident.Ordered[int])
	require.NoError(t, err)
	list, err := reg.NewList(indexed.Order(2))
	require.NoError(t, err)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := list.Add(newAccount(g*50 + i)); err != nil {
					t.Errorf("add: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 400, list.Len())
	snapshot, err := list.Snapshot()
	require.NoError(t, err)
	require.NoError(t, snapshot.Check())
	prev := -1
	err = list.ForEach(func(a *account) error {
		assert.Greater(t, a.no, prev)
		prev = a.no
		return nil
	})
	require.NoError(t, err)
	n, err := list.RemoveThat(func(a *account) bool { return a.no >= 200 })
	require.NoError(t, err)
	assert.Equal(t, 200, n)
	assert.Equal(t, 400, snapshot.Len(), "snapshot is independent of the guarded list")
	require.NoError(t, list.Destroy())
	require.NoError(t, snapshot.Destroy())
}

func TestGuardedChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.guarded")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	reg, err := NewRegistry[int, *account](ident.Ordered[int])
	require.NoError(t, err)
	a, err := reg.NewList()
	require.NoError(t, err)
	b, err := reg.NewList(indexed.Order(1))
	require.NoError(t, err)
	accounts := make([]*account, 10)
	for i := range accounts {
		accounts[i] = newAccount(i)
		require.NoError(t, a.Add(accounts[i]))
		require.NoError(t, b.Add(accounts[i]))
	}
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(acc *account) {
			defer wg.Done()
			err := reg.Change(acc, func(acc *account) { acc.no += 100 })
			if err != nil {
				t.Errorf("change: %v", err)
			}
		}(accounts[i])
	}
	wg.Wait()
	for _, list := range []*List[int, *account]{a, b} {
		first, ok := list.FirstThat(nil).Get()
		require.True(t, ok)
		assert.Equal(t, 5, first.no)
		assert.True(t, list.Contains(accounts[0]))
		assert.False(t, list.FindByIdentifier(100).IsNothing())
	}
	assert.ErrorIs(t, reg.Change(accounts[0], nil), ErrInvalidArgument)
	var nilReg *Registry[int, *account]
	_, err = nilReg.NewList()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	require.NoError(t, a.RemoveAll())
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 10, b.Len())
	require.NoError(t, b.Remove(accounts[9]))
	assert.EqualValues(t, 1, accounts[9].ReadRefs())
}

func TestSnapshotIsDetached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.guarded")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	reg, err := NewRegistry[int, *account](ident.Ordered[int])
	require.NoError(t, err)
	list, err := reg.NewList(indexed.Order(1))
	require.NoError(t, err)
	accounts := make([]*account, 20)
	for i := range accounts {
		accounts[i] = newAccount(i)
		require.NoError(t, list.Add(accounts[i]))
	}
	snapshot, err := list.Snapshot()
	require.NoError(t, err)
	require.NoError(t, snapshot.Check())
	assert.Equal(t, 1, snapshot.Order())
	assert.Equal(t, 1, snapshot.Registry().Lists(), "snapshot is expected to live in a registry of its own")
	// reading the snapshot without the lock while the guarded list is in use
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			n := 0
			_ = snapshot.ForEach(func(*account) error { n++; return nil })
			if n != 20 {
				t.Errorf("expected snapshot to hold 20 accounts, has %d", n)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if !list.Contains(accounts[i%20]) {
				t.Errorf("expected guarded list to contain account %d", i%20)
				return
			}
		}
	}()
	wg.Wait()
	reg.Lock()
	change, err := reg.reg.BeginChange(accounts[3])
	require.NoError(t, err)
	assert.Equal(t, 1, change.Lists(), "identifier change must not reach the snapshot")
	require.NoError(t, change.End())
	reg.Unlock()
	assert.Equal(t, 20, snapshot.Len())
	assert.Equal(t, 20, list.Len())
	require.NoError(t, snapshot.Destroy())
	require.NoError(t, list.Destroy())
}

func TestNilReceivers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "zinc.guarded")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	var list *List[int, *account]
	assert.ErrorIs(t, list.Add(newAccount(1)), ErrInvalidArgument)
	assert.ErrorIs(t, list.Remove(newAccount(1)), ErrInvalidArgument)
	assert.ErrorIs(t, list.RemoveAll(), ErrInvalidArgument)
	_, err := list.RemoveThat(func(*account) bool { return true })
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, list.Contains(newAccount(1)))
	assert.True(t, list.FindByIdentifier(1).IsNothing())
	assert.True(t, list.FirstThat(nil).IsNothing())
	assert.ErrorIs(t, list.ForEach(func(*account) error { return nil }), ErrInvalidArgument)
	assert.Equal(t, 0, list.Len())
	_, err = list.Snapshot()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, list.Destroy(), ErrInvalidArgument)
	assert.ErrorIs(t, (&List[int, *account]{}).Add(newAccount(2)), ErrInvalidArgument)
	var reg *Registry[int, *account]
	assert.ErrorIs(t, reg.Change(newAccount(3), func(*account) {}), ErrInvalidArgument)
	assert.ErrorIs(t, (&Registry[int, *account]{}).Change(newAccount(3), func(*account) {}), ErrInvalidArgument)
}
