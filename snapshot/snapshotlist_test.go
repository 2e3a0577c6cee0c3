package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/frame"
)

func newTestFrame(t *testing.T) *frame.MemFrame {
	t.Helper()
	f := frame.NewMemFrame()
	f.DefineNode(1, "station", 2)
	require.NoError(t, f.DefineAttr(1, 7, "voltage", 1))
	return f
}

// S3: overwriting the most recent tick replaces its values in place and
// doesn't change Size.
func TestSnapshotList_OverwriteLast(t *testing.T) {
	f := newTestFrame(t)
	key, err := core.PackKey(1, 0, 7, 0)
	require.NoError(t, err)

	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(3))

	attr, err := f.Store().Get(key)
	require.NoError(t, err)
	attr.Set(1.0)
	require.NoError(t, sl.TakeSnapshot(10))

	attr.Set(2.0)
	require.NoError(t, sl.TakeSnapshot(20))

	attr.Set(3.0)
	require.NoError(t, sl.TakeSnapshot(20))

	assert.Equal(t, 2, sl.Size())
	assert.Equal(t, 3.0, sl.Get(20, 1, 0, 7, 0).Float64())
	assert.Equal(t, 1.0, sl.Get(10, 1, 0, 7, 0).Float64())
}

// S4: following S3, re-taking a tick that isn't the most recent fails.
func TestSnapshotList_OutOfOrderOverwriteRejected(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(3))

	require.NoError(t, sl.TakeSnapshot(10))
	require.NoError(t, sl.TakeSnapshot(20))

	err := sl.TakeSnapshot(10)
	assert.ErrorIs(t, err, ErrInvalidSnapshotTick)
}

// S5: ring eviction keeps only the newest max_size ticks.
func TestSnapshotList_RingEviction(t *testing.T) {
	f := newTestFrame(t)
	key, err := core.PackKey(1, 0, 7, 0)
	require.NoError(t, err)

	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(2))

	attr, err := f.Store().Get(key)
	require.NoError(t, err)

	attr.Set(100)
	require.NoError(t, sl.TakeSnapshot(1))
	attr.Set(200)
	require.NoError(t, sl.TakeSnapshot(2))
	attr.Set(300)
	require.NoError(t, sl.TakeSnapshot(3))

	assert.Equal(t, 2, sl.Size())
	assert.Equal(t, []int64{2, 3}, sl.GetTicks())
	assert.True(t, sl.Get(1, 1, 0, 7, 0).IsNaN())
	assert.Equal(t, 200.0, sl.Get(2, 1, 0, 7, 0).Float64())
	assert.Equal(t, 300.0, sl.Get(3, 1, 0, 7, 0).Float64())
}

// Invariant 4: after N > max_size distinct ticks, Size == max_size and the
// retained ticks are the max_size largest.
func TestSnapshotList_RingBoundInvariant(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(3))

	for tick := int64(1); tick <= 10; tick++ {
		require.NoError(t, sl.TakeSnapshot(tick))
	}

	assert.Equal(t, 3, sl.Size())
	assert.Equal(t, []int64{8, 9, 10}, sl.GetTicks())
}

// Invariant 5 (Overwrite law) exercised with a multi-attribute mutation
// between the two take_snapshot calls on the same tick.
func TestSnapshotList_OverwriteLawPreservesSizeAndValues(t *testing.T) {
	f := newTestFrame(t)
	key, err := core.PackKey(1, 1, 7, 0)
	require.NoError(t, err)

	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(4))

	require.NoError(t, sl.TakeSnapshot(5))
	sizeBefore := sl.Size()

	attr, err := f.Store().Get(key)
	require.NoError(t, err)
	attr.Set(42.0)

	require.NoError(t, sl.TakeSnapshot(5))
	assert.Equal(t, sizeBefore, sl.Size())
	assert.Equal(t, 42.0, sl.Get(5, 1, 1, 7, 0).Float64())
}

// Invariant 6 (Query round-trip): prepare/query fills dest with Get's
// values for every in-range cell, leaving NaN cells untouched.
func TestSnapshotList_PrepareQueryRoundTrip(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(4))

	k0, _ := core.PackKey(1, 0, 7, 0)
	attr0, err := f.Store().Get(k0)
	require.NoError(t, err)
	attr0.Set(1.5)
	// leave node index 1's attribute as NaN.

	require.NoError(t, sl.TakeSnapshot(10))

	shape, err := sl.Prepare(1, nil, nil, []core.AttrID{7})
	require.NoError(t, err)
	assert.Equal(t, 1, shape.TickNumber)
	assert.Equal(t, 2, shape.MaxNodeNumber)
	assert.Equal(t, 1, shape.AttrNumber)
	assert.Equal(t, 1, shape.MaxSlotNumber)

	dest := make([]float64, shape.Len())
	dest[1] = -9.0 // sentinel to prove the NaN cell is left untouched.

	require.NoError(t, sl.Query(dest, shape))
	assert.Equal(t, 1.5, dest[0])
	assert.Equal(t, -9.0, dest[1])
}

func TestSnapshotList_QueryWithoutPrepareFails(t *testing.T) {
	sl := New()
	err := sl.Query(make([]float64, 1), ResultShape{1, 1, 1, 1})
	assert.ErrorIs(t, err, ErrQueryNotPrepared)
}

func TestSnapshotList_PrepareRequiresAttributes(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(1))

	_, err := sl.Prepare(1, nil, nil, nil)
	assert.ErrorIs(t, err, ErrQueryNoAttributes)
}

func TestSnapshotList_SetMaxSizeRejectsZero(t *testing.T) {
	sl := New()
	assert.ErrorIs(t, sl.SetMaxSize(0), ErrInvalidSnapshotSize)
}

func TestSnapshotList_SetMaxSizeLatchesOnFirstCall(t *testing.T) {
	sl := New()
	require.NoError(t, sl.SetMaxSize(5))
	require.NoError(t, sl.SetMaxSize(10))
	assert.Equal(t, 5, sl.MaxSize())
}

// Mapping reuse: consecutive snapshots of an unchanged, non-dirty store
// share one mapping object.
func TestSnapshotList_ReusesMappingAcrossUnchangedTicks(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(4))

	require.NoError(t, sl.TakeSnapshot(1))
	require.NoError(t, sl.TakeSnapshot(2))

	assert.Equal(t, sl.tickToMapping[1], sl.tickToMapping[2])
	assert.Len(t, sl.mappings, 1)
}

func TestSnapshotList_Reset(t *testing.T) {
	f := newTestFrame(t)
	sl := New()
	sl.SetFrame(f)
	require.NoError(t, sl.SetMaxSize(4))
	require.NoError(t, sl.TakeSnapshot(1))

	sl.Reset()

	assert.Equal(t, 0, sl.Size())
	assert.Empty(t, sl.GetTicks())
	assert.True(t, sl.Get(1, 1, 0, 7, 0).IsNaN())
}
