// Package snapshot implements SnapshotList: a bounded ring of frozen
// AttributeStore copies addressable by tick, with a two-step prepare/query
// protocol for multidimensional range reads and a CSV dump.
package snapshot

import (
	"time"

	"github.com/gridstate/gridstate"
	"github.com/gridstate/gridstate/attribute"
	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/frame"
	"github.com/gridstate/gridstate/store"
)

// SnapshotList is a bounded, tick-addressed ring of frozen AttributeStore
// snapshots. Ticks are assumed to be taken in non-decreasing order; the
// only permitted non-append is overwriting the single most recently taken
// tick. Ticks are therefore always in ascending insertion order, which
// this type exploits to track the oldest/newest tick without a sorted map.
type SnapshotList struct {
	boundFrame frame.Frame

	attrStore []attribute.Attribute
	mappings  []map[core.KeyWord]int

	ticksOrder    []int64
	tickToIndex   map[int64]int
	tickToSize    map[int64]int
	tickToMapping map[int64]int

	firstEmptySlotIndex int
	emptySlotsLength     int
	endIndex             int
	curSnapshotNum       int
	lastTick             int64
	maxSize              int

	isPrepared  bool
	queryParams queryParameters

	logger  *gridstate.Logger
	metrics gridstate.MetricsObserver
}

// New creates an empty SnapshotList. SetMaxSize and SetFrame (or passing a
// store explicitly to TakeSnapshotFrom) must both happen before
// TakeSnapshot is usable.
func New(opts ...Option) *SnapshotList {
	sl := &SnapshotList{
		tickToIndex:   make(map[int64]int),
		tickToSize:    make(map[int64]int),
		tickToMapping: make(map[int64]int),
		lastTick:      -1,
		logger:        gridstate.NoopLogger(),
		metrics:       gridstate.NoopMetricsObserver{},
	}
	for _, opt := range opts {
		opt(sl)
	}
	return sl
}

// SetFrame binds the Frame this list consumes thereafter for schema
// introspection (Prepare, Query, Dump) and as the default attribute source
// for TakeSnapshot. The list borrows the frame read-only; mutating its
// schema while snapshots exist is undefined.
func (sl *SnapshotList) SetFrame(f frame.Frame) {
	sl.boundFrame = f
}

// SetMaxSize sets the ring's capacity in number of ticks. Only the first
// successful call after construction takes effect — later calls are no-ops,
// and Reset does not clear the configured size.
func (sl *SnapshotList) SetMaxSize(n int) error {
	if n <= 0 {
		return ErrInvalidSnapshotSize
	}
	if sl.maxSize == 0 {
		sl.maxSize = n
	}
	return nil
}

// MaxSize returns the configured ring capacity in ticks.
func (sl *SnapshotList) MaxSize() int {
	return sl.maxSize
}

// Size returns the number of ticks currently held, capped at MaxSize.
func (sl *SnapshotList) Size() int {
	if sl.curSnapshotNum > sl.maxSize {
		return sl.maxSize
	}
	return sl.curSnapshotNum
}

// GetTicks returns the ticks currently held, in ascending order.
func (sl *SnapshotList) GetTicks() []int64 {
	out := make([]int64, len(sl.ticksOrder))
	copy(out, sl.ticksOrder)
	return out
}

// EmptyRegion returns the start index and length of the single contiguous
// hole the ring currently tracks.
func (sl *SnapshotList) EmptyRegion() (start, length int) {
	return sl.firstEmptySlotIndex, sl.emptySlotsLength
}

// EndIndex returns the exclusive upper bound of the ring's used region.
func (sl *SnapshotList) EndIndex() int {
	return sl.endIndex
}

// Reset clears every tick and mapping and zeroes the backing attribute
// buffer (not merely the maps), so stale NaN semantics hold for any future
// read of a slot that hasn't been written since. Capacity is not released.
func (sl *SnapshotList) Reset() {
	sl.tickToIndex = make(map[int64]int)
	sl.tickToSize = make(map[int64]int)
	sl.tickToMapping = make(map[int64]int)
	sl.mappings = nil
	sl.ticksOrder = nil

	for i := range sl.attrStore {
		sl.attrStore[i] = attribute.NaN()
	}

	sl.firstEmptySlotIndex = 0
	sl.emptySlotsLength = 0
	sl.endIndex = 0
	sl.curSnapshotNum = 0
	sl.lastTick = -1
	sl.isPrepared = false
	sl.queryParams.reset()
}

// Get returns the attribute at (tick, node_id, node_index, attr_id,
// slot_index), or attribute.NaN() if the tick isn't held or the key wasn't
// live in that tick's mapping. This never errors; a miss reads back as an
// empty cell.
func (sl *SnapshotList) Get(tick int64, nodeID core.NodeID, nodeIndex core.NodeIndex, attrID core.AttrID, slotIndex core.SlotIndex) attribute.Attribute {
	startIndex, ok := sl.tickToIndex[tick]
	if !ok {
		return attribute.NaN()
	}

	mappingIdx, ok := sl.tickToMapping[tick]
	if !ok || mappingIdx >= len(sl.mappings) {
		return attribute.NaN()
	}

	key, err := core.PackKey(nodeID, nodeIndex, attrID, slotIndex)
	if err != nil {
		return attribute.NaN()
	}

	offset, ok := sl.mappings[mappingIdx][key]
	if !ok {
		return attribute.NaN()
	}

	return sl.attrStore[startIndex+offset]
}

func (sl *SnapshotList) ensureMaxSize() error {
	if sl.maxSize == 0 {
		return ErrInvalidSnapshotSize
	}
	return nil
}

// prepareMemory pre-sizes attrStore once, on the first TakeSnapshot after
// construction, using the bound frame's current store capacity as an
// estimate. It is a performance hint only: appendToEnd grows attrStore
// further on demand regardless.
func (sl *SnapshotList) prepareMemory() {
	if sl.boundFrame != nil && len(sl.attrStore) == 0 {
		n := sl.boundFrame.Store().Capacity() * sl.maxSize
		sl.attrStore = make([]attribute.Attribute, n)
		for i := range sl.attrStore {
			sl.attrStore[i] = attribute.NaN()
		}
	}
}

// TakeSnapshot freezes the bound frame's live AttributeStore under tick.
func (sl *SnapshotList) TakeSnapshot(tick int64) error {
	if sl.boundFrame == nil {
		return ErrInvalidFrameState
	}
	return sl.takeSnapshot(tick, sl.boundFrame.Store())
}

// TakeSnapshotFrom freezes src under tick instead of the bound frame's live
// store — useful for callers that maintain their own AttributeStore outside
// a frame.Frame.
func (sl *SnapshotList) TakeSnapshotFrom(tick int64, src *store.AttributeStore) error {
	if src == nil {
		return ErrInvalidFrameState
	}
	return sl.takeSnapshot(tick, src)
}

func (sl *SnapshotList) takeSnapshot(tick int64, src *store.AttributeStore) error {
	if err := sl.ensureMaxSize(); err != nil {
		return err
	}
	sl.prepareMemory()

	start := time.Now()
	snapshotSize := src.Size()

	skipOldestErase := false
	evictedOldest := false

	if existingIndex, ok := sl.tickToIndex[tick]; ok {
		if sl.lastTick != tick {
			return ErrInvalidSnapshotTick
		}

		existingSize := sl.tickToSize[tick]
		delete(sl.tickToIndex, tick)
		delete(sl.tickToSize, tick)
		delete(sl.tickToMapping, tick)
		sl.ticksOrder = sl.ticksOrder[:len(sl.ticksOrder)-1]

		if existingIndex+existingSize == sl.endIndex {
			sl.endIndex = existingIndex
		} else {
			sl.firstEmptySlotIndex = existingIndex
			sl.emptySlotsLength += existingSize
		}

		sl.curSnapshotNum--
		skipOldestErase = true
	}

	sl.curSnapshotNum++

	var err error
	if sl.curSnapshotNum > sl.maxSize {
		if !skipOldestErase {
			oldestTick := sl.ticksOrder[0]
			oldestIndex := sl.tickToIndex[oldestTick]
			oldestSize := sl.tickToSize[oldestTick]

			delete(sl.tickToIndex, oldestTick)
			delete(sl.tickToSize, oldestTick)
			delete(sl.tickToMapping, oldestTick)
			sl.ticksOrder = sl.ticksOrder[1:]

			if sl.emptySlotsLength == 0 {
				sl.firstEmptySlotIndex = oldestIndex
				sl.emptySlotsLength = oldestSize
			} else {
				sl.emptySlotsLength += oldestSize
			}
			evictedOldest = true
		}

		if sl.emptySlotsLength >= snapshotSize {
			err = sl.writeToEmptySlots(src, tick)
		} else {
			err = sl.appendToEnd(src, tick)
		}
	} else {
		err = sl.appendToEnd(src, tick)
	}
	if err != nil {
		return err
	}

	sl.lastTick = tick

	sl.logger.LogTakeSnapshot(tick, snapshotSize, evictedOldest, time.Since(start))
	sl.metrics.OnTakeSnapshot(time.Since(start), evictedOldest)
	return nil
}

// copyFromAttrStore arranges and copies src's live cells into
// attrStore[startIndex:], reusing the previous tick's key->offset mapping
// when src isn't dirty and its live count hasn't changed — the
// mapping-reuse optimization below.
func (sl *SnapshotList) copyFromAttrStore(src *store.AttributeStore, tick int64, startIndex int) error {
	haveLast := len(sl.ticksOrder) > 0
	isCopyMapping := true
	var lastMappingIdx int

	if haveLast && !src.IsDirty() {
		lastTick := sl.ticksOrder[len(sl.ticksOrder)-1]
		lastMappingIdx = sl.tickToMapping[lastTick]
		if len(sl.mappings[lastMappingIdx]) == src.Size() {
			isCopyMapping = false
		}
	}

	n := src.Size()
	dest := sl.attrStore[startIndex : startIndex+n]

	if isCopyMapping {
		mapping := make(map[core.KeyWord]int, n)
		if _, err := src.CopyTo(dest, mapping); err != nil {
			return err
		}
		sl.mappings = append(sl.mappings, mapping)
		sl.tickToMapping[tick] = len(sl.mappings) - 1
	} else {
		if _, err := src.CopyTo(dest, nil); err != nil {
			return err
		}
		sl.tickToMapping[tick] = lastMappingIdx
	}
	return nil
}

func (sl *SnapshotList) appendToEnd(src *store.AttributeStore, tick int64) error {
	snapshotSize := src.Size()

	if sl.endIndex+snapshotSize > len(sl.attrStore) {
		oldCap := len(sl.attrStore)
		newCap := (sl.endIndex + snapshotSize) * 2
		grown := make([]attribute.Attribute, newCap)
		copy(grown, sl.attrStore)
		for i := oldCap; i < newCap; i++ {
			grown[i] = attribute.NaN()
		}
		sl.attrStore = grown

		sl.logger.LogGrow("attr_store", oldCap, newCap)
		sl.metrics.OnGrow("attr_store", oldCap, newCap)
	}

	if err := sl.copyFromAttrStore(src, tick, sl.endIndex); err != nil {
		return err
	}

	sl.tickToSize[tick] = snapshotSize
	sl.tickToIndex[tick] = sl.endIndex
	sl.ticksOrder = append(sl.ticksOrder, tick)
	sl.endIndex += snapshotSize
	return nil
}

func (sl *SnapshotList) writeToEmptySlots(src *store.AttributeStore, tick int64) error {
	snapshotSize := src.Size()

	if err := sl.copyFromAttrStore(src, tick, sl.firstEmptySlotIndex); err != nil {
		return err
	}

	sl.tickToIndex[tick] = sl.firstEmptySlotIndex
	sl.tickToSize[tick] = snapshotSize
	sl.ticksOrder = append(sl.ticksOrder, tick)
	sl.firstEmptySlotIndex += snapshotSize
	sl.emptySlotsLength -= snapshotSize
	return nil
}
