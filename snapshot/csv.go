package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gridstate/gridstate/core"
	"github.com/gridstate/gridstate/frame"
)

// Dump writes one CSV file per node type in the bound frame, named
// snapshots_<node_name>.csv under dir. Header row is
// "tick,node_index,<attr_name_1>,...". A single-slot attribute column
// holds a bare float (or "nan"); a multi-slot attribute column holds a
// quoted "[v0,v1,...,]" token — the trailing comma before the closing
// bracket is intentional, part of the format.
func (sl *SnapshotList) Dump(dir string) error {
	if sl.boundFrame == nil {
		return ErrInvalidFrameState
	}

	nodes := sl.boundFrame.Nodes()
	for _, node := range nodes {
		if err := sl.dumpNode(dir, node); err != nil {
			sl.logger.LogDump(dir, 0, err)
			return err
		}
	}

	sl.logger.LogDump(dir, len(nodes), nil)
	return nil
}

func (sl *SnapshotList) dumpNode(dir string, node frame.NodeDef) error {
	path := filepath.Join(dir, fmt.Sprintf("snapshots_%s.csv", node.Name))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	attrIDs := sl.boundFrame.NodeAttrs(node.ID)

	if err := writeHeader(f, sl.boundFrame, attrIDs); err != nil {
		return err
	}

	for _, tick := range sl.ticksOrder {
		for nodeIndex := core.NodeIndex(0); nodeIndex < node.NumberOfInstances; nodeIndex++ {
			if err := sl.dumpRow(f, tick, node.ID, nodeIndex, attrIDs); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(w io.Writer, f frame.Frame, attrIDs []core.AttrID) error {
	if _, err := io.WriteString(w, "tick,node_index"); err != nil {
		return err
	}
	for _, attrID := range attrIDs {
		attrDef, ok := f.Attr(attrID)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, ",%s", attrDef.Name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (sl *SnapshotList) dumpRow(w io.Writer, tick int64, nodeID core.NodeID, nodeIndex core.NodeIndex, attrIDs []core.AttrID) error {
	if _, err := fmt.Fprintf(w, "%d,%d", tick, nodeIndex); err != nil {
		return err
	}

	for _, attrID := range attrIDs {
		attrDef, ok := sl.boundFrame.Attr(attrID)
		if !ok {
			continue
		}

		if attrDef.MaxSlots == 1 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
			if err := sl.writeAttribute(w, tick, nodeID, nodeIndex, attrID, 0); err != nil {
				return err
			}
			continue
		}

		if _, err := io.WriteString(w, `,"[`); err != nil {
			return err
		}
		for slot := core.SlotIndex(0); slot < attrDef.MaxSlots; slot++ {
			if err := sl.writeAttribute(w, tick, nodeID, nodeIndex, attrID, slot); err != nil {
				return err
			}
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `]"`); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// writeAttribute renders a single cell using attribute.Attribute.String,
// which already matches this format ("nan" for empty, the shared
// formatFloat otherwise).
func (sl *SnapshotList) writeAttribute(w io.Writer, tick int64, nodeID core.NodeID, nodeIndex core.NodeIndex, attrID core.AttrID, slot core.SlotIndex) error {
	attr := sl.Get(tick, nodeID, nodeIndex, attrID, slot)
	_, err := io.WriteString(w, attr.String())
	return err
}
