// Package frame defines the read-only schema registry that
// snapshot.SnapshotList consumes for node/attribute introspection during
// query and dump. SnapshotList never owns a Frame; it borrows one via
// SetFrame and treats it as immutable for the lifetime of the binding.
package frame

import (
	"fmt"

	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/store"
)

// NodeDef describes one node type in the schema: its id, display name, and
// the number of live instances the frame currently tracks for it.
type NodeDef struct {
	ID               core.NodeID
	Name             string
	NumberOfInstances core.NodeIndex
}

// AttrDef describes one attribute type: its id, display name, and the
// number of slots it occupies per instance (1 for a scalar attribute).
type AttrDef struct {
	ID       core.AttrID
	Name     string
	MaxSlots core.SlotIndex
}

// Frame is the read-only node and attribute schema SnapshotList requires: a
// node -> attribute index, a node id validator, and a handle to the live
// AttributeStore backing the frame's current tick.
type Frame interface {
	Nodes() []NodeDef
	Node(id core.NodeID) (NodeDef, bool)
	Attrs() []AttrDef
	Attr(id core.AttrID) (AttrDef, bool)

	// NodeAttrs returns the attribute ids declared for node id, in
	// declaration order.
	NodeAttrs(id core.NodeID) []core.AttrID

	// EnsureNodeID fails with an out-of-range error if id isn't a known
	// node type.
	EnsureNodeID(id core.NodeID) error

	// Store returns the live AttributeStore this frame's nodes currently
	// read and write through.
	Store() *store.AttributeStore
}

// ErrUnknownNodeID is returned by EnsureNodeID for a node id the frame
// never declared.
type ErrUnknownNodeID struct {
	ID core.NodeID
}

func (e *ErrUnknownNodeID) Error() string {
	return fmt.Sprintf("gridstate/frame: unknown node id %d", e.ID)
}
