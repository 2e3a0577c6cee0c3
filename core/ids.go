// Package core defines the small identifier types shared by every
// gridstate subpackage and the KeyWord packing that turns a
// (node_id, node_index, attr_id, slot_index) 4-tuple into a single
// hashable, comparable word.
package core

// NodeID identifies a node (entity) type within the schema. Assigned by the
// Frame.
type NodeID uint16

// AttrID identifies an attribute definition within the schema. Assigned by
// the Frame.
type AttrID uint16

// NodeIndex is the instance index of a node within its node type,
// [0, number_of_instances).
type NodeIndex uint32

// SlotIndex is the position within a slotted attribute, [0, max_slots).
type SlotIndex uint16

// KeyWord is the packed 64-bit composite key
// (node_id, node_index, attr_id, slot_index) used as a map key throughout
// store and snapshot.
type KeyWord uint64
