package snapshot

import (
	"time"

	"github.com/gridstate/gridstate/core"
)

// Prepare validates and stashes a query selection, returning the
// ResultShape the caller must allocate before calling Query. ticks,
// nodeIndices may be nil to mean "all held ticks" / "all instances of the
// node type" respectively; attributes must be non-empty.
func (sl *SnapshotList) Prepare(nodeID core.NodeID, ticks []int64, nodeIndices []core.NodeIndex, attributes []core.AttrID) (ResultShape, error) {
	if len(attributes) == 0 {
		return ResultShape{}, ErrQueryNoAttributes
	}
	if err := sl.ensureMaxSize(); err != nil {
		return ResultShape{}, err
	}
	if sl.boundFrame == nil {
		return ResultShape{}, ErrInvalidFrameState
	}
	if err := sl.boundFrame.EnsureNodeID(nodeID); err != nil {
		return ResultShape{}, err
	}

	node, _ := sl.boundFrame.Node(nodeID)

	var shape ResultShape
	for _, attrID := range attributes {
		attr, ok := sl.boundFrame.Attr(attrID)
		if !ok {
			continue
		}
		if int(attr.MaxSlots) > shape.MaxSlotNumber {
			shape.MaxSlotNumber = int(attr.MaxSlots)
		}
	}

	nodeLength := len(nodeIndices)
	if nodeIndices == nil {
		nodeLength = int(node.NumberOfInstances)
	}

	tickLength := len(ticks)
	if ticks == nil {
		tickLength = len(sl.ticksOrder)
	}

	sl.queryParams = queryParameters{
		nodeID:      nodeID,
		ticks:       ticks,
		nodeIndices: nodeIndices,
		attributes:  attributes,
	}
	sl.isPrepared = true

	shape.MaxNodeNumber = nodeLength
	shape.TickNumber = tickLength
	shape.AttrNumber = len(attributes)
	return shape, nil
}

// Query fills dest (length shape.Len()) with the cells shape describes, in
// tick-major, then-node, then-attribute, then-slot order. A cell that was
// NaN in its snapshot is left untouched in dest (so pre-zero dest if you
// want NaN to read back as 0). Query must be preceded by a matching
// Prepare; it clears the prepared state whenever it returns nil. An error
// return (nil dest, no max size, no bound frame) leaves the prepared state
// as it was.
func (sl *SnapshotList) Query(dest []float64, shape ResultShape) error {
	if dest == nil {
		return ErrQueryResultNil
	}
	if !sl.isPrepared {
		return ErrQueryNotPrepared
	}

	if shape.AttrNumber == 0 || shape.MaxNodeNumber == 0 || shape.MaxSlotNumber == 0 || shape.TickNumber == 0 {
		sl.isPrepared = false
		sl.queryParams.reset()
		return nil
	}

	if err := sl.ensureMaxSize(); err != nil {
		return err
	}
	if sl.boundFrame == nil {
		return ErrInvalidFrameState
	}

	start := time.Now()
	params := sl.queryParams
	node, _ := sl.boundFrame.Node(params.nodeID)

	ticks := params.ticks
	if ticks == nil {
		ticks = sl.GetTicks()
	}

	nodeIndices := params.nodeIndices
	if nodeIndices == nil {
		nodeIndices = make([]core.NodeIndex, node.NumberOfInstances)
		for i := range nodeIndices {
			nodeIndices[i] = core.NodeIndex(i)
		}
	}

	resultIndex := 0
	for _, tick := range ticks {
		for _, nodeIndex := range nodeIndices {
			for _, attrID := range params.attributes {
				for slot := core.SlotIndex(0); int(slot) < shape.MaxSlotNumber; slot++ {
					attr := sl.Get(tick, params.nodeID, nodeIndex, attrID, slot)
					if !attr.IsNaN() {
						dest[resultIndex] = attr.Float64()
					}
					resultIndex++
				}
			}
		}
	}

	sl.isPrepared = false
	sl.queryParams.reset()

	sl.logger.LogQuery(resultIndex, time.Since(start))
	sl.metrics.OnQuery(time.Since(start), resultIndex)
	return nil
}
