// Package store implements AttributeStore: a compact, index-keyed pool of
// attribute cells with a sparse-to-dense address mapping, a bitset tracking
// empty cells, and an on-demand compaction ("arrange") pass that closes
// holes without renumbering live handles.
//
// NOTE on removing/adding: removing never changes LastIndex (except tail
// trimming); adding only ever increases LastIndex; Arrange is the only
// operation that can decrease LastIndex, and it does so down to Size().
package store

import (
	"time"

	"github.com/gridstate/gridstate"
	"github.com/gridstate/gridstate/attribute"
	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/internal/bitset"
)

const defaultInitialCapacity = 64
const defaultGrowthFactor = 2.0

// AttributeStore is a dense vector of attribute.Attribute cells addressed
// through a sparse KeyWord -> index mapping, with a bitset of empty cells
// and an on-demand compaction pass. keyToIndex and indexToKey are kept
// inverse to each other, and a cell's emptyMask bit is set exactly when no
// key maps to it.
type AttributeStore struct {
	cells      []attribute.Attribute
	keyToIndex map[core.KeyWord]int
	indexToKey map[int]core.KeyWord
	emptyMask  *bitset.Bitset
	lastIndex  int
	holeCount  int

	initialCapacity int
	growthFactor    float64
	logger          *gridstate.Logger
	metrics         gridstate.MetricsObserver
}

// New creates an AttributeStore and calls Setup with either the requested
// initial capacity (WithInitialCapacity) or defaultInitialCapacity.
func New(opts ...Option) *AttributeStore {
	s := &AttributeStore{
		initialCapacity: defaultInitialCapacity,
		growthFactor:    defaultGrowthFactor,
		logger:          gridstate.NoopLogger(),
		metrics:         gridstate.NoopMetricsObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Setup(s.initialCapacity)
	return s
}

// Setup (re)initializes the store to a capacity of at least n cells
// (rounded up to a multiple of 64), all NaN and all empty. LastIndex and
// Dirty are reset.
func (s *AttributeStore) Setup(n int) {
	s.emptyMask = bitset.New(n)
	cap := s.emptyMask.Cap()

	s.cells = make([]attribute.Attribute, cap)
	for i := range s.cells {
		s.cells[i] = attribute.NaN()
	}
	s.emptyMask.SetAll()

	s.keyToIndex = make(map[core.KeyWord]int)
	s.indexToKey = make(map[int]core.KeyWord)
	s.lastIndex = 0
	s.holeCount = 0
}

// Capacity returns the current cell capacity (always a multiple of 64).
func (s *AttributeStore) Capacity() int {
	return len(s.cells)
}

// LastIndex returns the exclusive upper bound of the live region.
func (s *AttributeStore) LastIndex() int {
	return s.lastIndex
}

// Size returns the number of live cells.
func (s *AttributeStore) Size() int {
	return len(s.keyToIndex)
}

// IsDirty reports whether there is at least one hole below LastIndex.
func (s *AttributeStore) IsDirty() bool {
	return s.holeCount > 0
}

// Reset clears all attributes and mappings, returning the store to the
// state right after Setup(initialCapacity).
func (s *AttributeStore) Reset() {
	s.Setup(s.initialCapacity)
}

// Get returns a pointer to the cell at key. The pointer aliases the
// store's backing slice and is invalidated by any later call that can grow
// or compact the store (AddNodes, Arrange, CopyTo, Setup, Reset) — do not
// retain it across such a call.
func (s *AttributeStore) Get(key core.KeyWord) (*attribute.Attribute, error) {
	idx, ok := s.keyToIndex[key]
	if !ok {
		return nil, &BadAttributeIndexingError{Key: key}
	}
	return &s.cells[idx], nil
}

// AddNodes ensures every key (node_id, index, attr_id, slot) for
// index in [startIndex, stopIndex) and slot in [0, slotNum) is mapped to a
// cell, growing the store geometrically if it runs out of free slots.
// Already-mapped keys are left untouched.
func (s *AttributeStore) AddNodes(nodeID core.NodeID, startIndex, stopIndex core.NodeIndex, attrID core.AttrID, slotNum core.SlotIndex) error {
	for nodeIndex := startIndex; nodeIndex < stopIndex; nodeIndex++ {
		for slot := core.SlotIndex(0); slot < slotNum; slot++ {
			key, err := core.PackKey(nodeID, nodeIndex, attrID, slot)
			if err != nil {
				return err
			}
			if _, exists := s.keyToIndex[key]; exists {
				continue
			}
			s.place(key)
		}
	}
	return nil
}

// place assigns key to the lowest free cell, growing the store if none is
// available.
func (s *AttributeStore) place(key core.KeyWord) {
	chosen := s.firstFreeIndex()
	if chosen == -1 {
		s.grow()
		chosen = s.firstFreeIndex()
	}

	prevLastIndex := s.lastIndex

	s.cells[chosen] = attribute.NaN()
	s.keyToIndex[key] = chosen
	s.indexToKey[chosen] = key
	s.emptyMask.Clear(chosen)

	if chosen+1 > s.lastIndex {
		s.lastIndex = chosen + 1
	}
	if chosen < prevLastIndex {
		// chosen was a hole inside the already-live region; it's filled now.
		s.holeCount--
	}
}

// firstFreeIndex returns the lowest set-bit (empty) cell index, or -1 if
// the store is at capacity.
func (s *AttributeStore) firstFreeIndex() int {
	idx := s.emptyMask.FirstSetFrom(0)
	if idx >= s.emptyMask.Cap() {
		return -1
	}
	return idx
}

// grow doubles (or Option-configured factor) the backing storage.
func (s *AttributeStore) grow() {
	oldCap := len(s.cells)
	newCap := int(float64(oldCap) * s.growthFactor)
	if newCap <= oldCap {
		newCap = oldCap + defaultInitialCapacity
	}

	s.emptyMask.Grow(newCap)
	grownCap := s.emptyMask.Cap()

	newCells := make([]attribute.Attribute, grownCap)
	copy(newCells, s.cells)
	for i := oldCap; i < grownCap; i++ {
		newCells[i] = attribute.NaN()
		s.emptyMask.Set(i)
	}
	s.cells = newCells

	s.logger.LogGrow("cells", oldCap, grownCap)
	s.metrics.OnGrow("cells", oldCap, grownCap)
}

// RemoveNode removes the keys (node_id, node_index, attr_id, slot) for
// slot in [0, slotNum).
func (s *AttributeStore) RemoveNode(nodeID core.NodeID, nodeIndex core.NodeIndex, attrID core.AttrID, slotNum core.SlotIndex) error {
	for slot := core.SlotIndex(0); slot < slotNum; slot++ {
		key, err := core.PackKey(nodeID, nodeIndex, attrID, slot)
		if err != nil {
			return err
		}
		s.removeKey(key)
	}
	return nil
}

// RemoveAttrSlots removes the keys (node_id, node_index, attr_id, slot) for
// node_index in [0, nodeNum) and slot in [from, stop).
func (s *AttributeStore) RemoveAttrSlots(nodeID core.NodeID, nodeNum core.NodeIndex, attrID core.AttrID, from, stop core.SlotIndex) error {
	for nodeIndex := core.NodeIndex(0); nodeIndex < nodeNum; nodeIndex++ {
		for slot := from; slot < stop; slot++ {
			key, err := core.PackKey(nodeID, nodeIndex, attrID, slot)
			if err != nil {
				return err
			}
			s.removeKey(key)
		}
	}
	return nil
}

// removeKey is a no-op if key isn't currently mapped: RemoveNode and
// RemoveAttrSlots never guard against partially unmapped ranges.
func (s *AttributeStore) removeKey(key core.KeyWord) {
	idx, ok := s.keyToIndex[key]
	if !ok {
		return
	}

	s.cells[idx].Clear()
	s.emptyMask.Set(idx)
	delete(s.keyToIndex, key)
	delete(s.indexToKey, idx)

	if idx == s.lastIndex-1 {
		// Tail trim: idx itself was never counted as a hole (it was live
		// until the lines above), so drop it from the live region for
		// free. Any further holes this exposes at the new tail were
		// already counted — each one we trim past leaves the counted
		// region, so holeCount drops with it.
		s.lastIndex--
		for s.lastIndex > 0 && s.emptyMask.Test(s.lastIndex-1) {
			s.lastIndex--
			s.holeCount--
		}
	} else {
		s.holeCount++
	}
}

// Arrange compacts the store: every live cell below LastIndex is moved
// down to close holes, preserving relative order. After Arrange,
// IsDirty() is false and LastIndex() == Size().
func (s *AttributeStore) Arrange() {
	start := time.Now()
	holesClosed := 0

	dst := 0
	for src := 0; src < s.lastIndex; src++ {
		if s.emptyMask.Test(src) {
			continue
		}
		if src != dst {
			key := s.indexToKey[src]
			s.cells[dst] = s.cells[src]
			delete(s.indexToKey, src)
			s.indexToKey[dst] = key
			s.keyToIndex[key] = dst

			s.cells[src] = attribute.NaN()
			s.emptyMask.Clear(dst)
			s.emptyMask.Set(src)
			holesClosed++
		}
		dst++
	}

	s.lastIndex = dst
	s.holeCount = 0

	s.logger.LogArrange(holesClosed, s.lastIndex)
	s.metrics.OnArrange(time.Since(start), holesClosed)
}

// CopyTo arranges the store, then copies cells[0:Size()] into dest (which
// must have length >= Size()) and, if destMapping is non-nil, copies the
// current key->index mapping into it.
func (s *AttributeStore) CopyTo(dest []attribute.Attribute, destMapping map[core.KeyWord]int) (int, error) {
	s.Arrange()

	n := s.Size()
	if len(dest) < n {
		return 0, &ErrDestTooSmall{Need: n, Got: len(dest)}
	}

	copy(dest[:n], s.cells[:n])

	if destMapping != nil {
		for k, v := range s.keyToIndex {
			destMapping[k] = v
		}
	}

	return n, nil
}
