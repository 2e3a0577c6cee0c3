package store

import (
	"errors"
	"fmt"

	"github.com/gridstate/gridstate/core"
)

// ErrBadAttributeIndexing is the sentinel for "key not mapped in this
// store". Use errors.Is against this sentinel, or errors.As against
// *BadAttributeIndexingError to recover the offending key.
var ErrBadAttributeIndexing = errors.New("gridstate/store: attribute key not found")

// BadAttributeIndexingError wraps ErrBadAttributeIndexing with the key that
// triggered it.
type BadAttributeIndexingError struct {
	Key core.KeyWord
}

func (e *BadAttributeIndexingError) Error() string {
	nodeID, nodeIndex, attrID, slot := core.UnpackKey(e.Key)
	return fmt.Sprintf("%s: node_id=%d node_index=%d attr_id=%d slot_index=%d",
		ErrBadAttributeIndexing, nodeID, nodeIndex, attrID, slot)
}

func (e *BadAttributeIndexingError) Unwrap() error {
	return ErrBadAttributeIndexing
}

// ErrDestTooSmall is returned by CopyTo when the destination slice is
// shorter than the store's current Size().
type ErrDestTooSmall struct {
	Need int
	Got  int
}

func (e *ErrDestTooSmall) Error() string {
	return fmt.Sprintf("gridstate/store: copy destination too small: need %d, got %d", e.Need, e.Got)
}
