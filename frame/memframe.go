package frame

import (
	"sort"

	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/store"
)

// MemFrame is a reference, in-memory Frame implementation for tests,
// examples, and embedders that don't already maintain their own schema
// registry. It owns the AttributeStore it hands out through Store().
type MemFrame struct {
	nodes     map[core.NodeID]NodeDef
	attrs     map[core.AttrID]AttrDef
	nodeAttrs map[core.NodeID][]core.AttrID
	attrStore *store.AttributeStore
}

// NewMemFrame creates an empty MemFrame backed by a fresh AttributeStore
// built with storeOpts.
func NewMemFrame(storeOpts ...store.Option) *MemFrame {
	return &MemFrame{
		nodes:     make(map[core.NodeID]NodeDef),
		attrs:     make(map[core.AttrID]AttrDef),
		nodeAttrs: make(map[core.NodeID][]core.AttrID),
		attrStore: store.New(storeOpts...),
	}
}

// DefineNode registers a node type. It allocates no cells itself: cells are
// allocated by DefineAttr, for the instance count the node has at that time.
func (f *MemFrame) DefineNode(id core.NodeID, name string, numberOfInstances core.NodeIndex) {
	f.nodes[id] = NodeDef{ID: id, Name: name, NumberOfInstances: numberOfInstances}
}

// DefineAttr registers an attribute type and associates it with nodeID,
// allocating cells for every existing instance of that node.
func (f *MemFrame) DefineAttr(nodeID core.NodeID, id core.AttrID, name string, maxSlots core.SlotIndex) error {
	f.attrs[id] = AttrDef{ID: id, Name: name, MaxSlots: maxSlots}

	attrs := f.nodeAttrs[nodeID]
	for _, existing := range attrs {
		if existing == id {
			return nil
		}
	}
	f.nodeAttrs[nodeID] = append(attrs, id)

	node, ok := f.nodes[nodeID]
	if !ok {
		return &ErrUnknownNodeID{ID: nodeID}
	}
	return f.attrStore.AddNodes(nodeID, 0, node.NumberOfInstances, id, maxSlots)
}

func (f *MemFrame) Nodes() []NodeDef {
	out := make([]NodeDef, 0, len(f.nodes))
	for _, n := range f.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *MemFrame) Node(id core.NodeID) (NodeDef, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

func (f *MemFrame) Attrs() []AttrDef {
	out := make([]AttrDef, 0, len(f.attrs))
	for _, a := range f.attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *MemFrame) Attr(id core.AttrID) (AttrDef, bool) {
	a, ok := f.attrs[id]
	return a, ok
}

func (f *MemFrame) NodeAttrs(id core.NodeID) []core.AttrID {
	attrs := f.nodeAttrs[id]
	out := make([]core.AttrID, len(attrs))
	copy(out, attrs)
	return out
}

func (f *MemFrame) EnsureNodeID(id core.NodeID) error {
	if _, ok := f.nodes[id]; !ok {
		return &ErrUnknownNodeID{ID: id}
	}
	return nil
}

func (f *MemFrame) Store() *store.AttributeStore {
	return f.attrStore
}
