package core

import "fmt"

// Bit widths of each field within a KeyWord, MSB to LSB:
// node_id(12) | node_index(28) | attr_id(16) | slot_index(8) = 64 bits.
//
// node_index gets the widest field since simulations typically have few
// node/attribute types but many instances per type.
const (
	nodeIndexBits = 28
	nodeIDBits    = 12
	attrIDBits    = 16
	slotIndexBits = 8

	nodeIndexShift = attrIDBits + slotIndexBits
	nodeIDShift    = nodeIndexShift + nodeIndexBits

	nodeIDMax    = uint64(1)<<nodeIDBits - 1
	nodeIndexMax = uint64(1)<<nodeIndexBits - 1
	attrIDMax    = uint64(1)<<attrIDBits - 1
	slotIndexMax = uint64(1)<<slotIndexBits - 1
)

// ErrKeyRangeOverflow is returned by PackKey when one of the four fields
// does not fit in its allotted bit width, rather than truncating silently.
type ErrKeyRangeOverflow struct {
	Field string
	Value uint64
	Max   uint64
}

func (e *ErrKeyRangeOverflow) Error() string {
	return fmt.Sprintf("gridstate: key field %s value %d exceeds max %d", e.Field, e.Value, e.Max)
}

// PackKey builds the composite KeyWord for
// (node_id, node_index, attr_id, slot_index). It is a bijection on the
// domain ranges given by the bit widths above — callers outside those
// ranges get ErrKeyRangeOverflow rather than silent truncation.
func PackKey(nodeID NodeID, nodeIndex NodeIndex, attrID AttrID, slotIndex SlotIndex) (KeyWord, error) {
	if uint64(nodeID) > nodeIDMax {
		return 0, &ErrKeyRangeOverflow{Field: "node_id", Value: uint64(nodeID), Max: nodeIDMax}
	}
	if uint64(nodeIndex) > nodeIndexMax {
		return 0, &ErrKeyRangeOverflow{Field: "node_index", Value: uint64(nodeIndex), Max: nodeIndexMax}
	}
	if uint64(attrID) > attrIDMax {
		return 0, &ErrKeyRangeOverflow{Field: "attr_id", Value: uint64(attrID), Max: attrIDMax}
	}
	if uint64(slotIndex) > slotIndexMax {
		return 0, &ErrKeyRangeOverflow{Field: "slot_index", Value: uint64(slotIndex), Max: slotIndexMax}
	}

	key := uint64(nodeID)<<nodeIDShift |
		uint64(nodeIndex)<<nodeIndexShift |
		uint64(attrID)<<slotIndexBits |
		uint64(slotIndex)

	return KeyWord(key), nil
}

// MustPackKey is PackKey for callers (internal to a Frame implementation
// that has already validated ranges) that would rather panic than thread an
// error through. Not used by store or snapshot themselves.
func MustPackKey(nodeID NodeID, nodeIndex NodeIndex, attrID AttrID, slotIndex SlotIndex) KeyWord {
	k, err := PackKey(nodeID, nodeIndex, attrID, slotIndex)
	if err != nil {
		panic(err)
	}
	return k
}

// UnpackKey reverses PackKey, mainly useful for compaction bookkeeping and
// tests.
func UnpackKey(key KeyWord) (nodeID NodeID, nodeIndex NodeIndex, attrID AttrID, slotIndex SlotIndex) {
	k := uint64(key)
	nodeID = NodeID(k >> nodeIDShift & nodeIDMax)
	nodeIndex = NodeIndex(k >> nodeIndexShift & nodeIndexMax)
	attrID = AttrID(k >> slotIndexBits & attrIDMax)
	slotIndex = SlotIndex(k & slotIndexMax)
	return
}
