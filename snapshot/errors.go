package snapshot

import "errors"

var (
	// ErrInvalidSnapshotTick is returned by TakeSnapshot when tick already
	// exists and isn't the most recent tick — only the most recent tick may
	// be overwritten.
	ErrInvalidSnapshotTick = errors.New("gridstate/snapshot: invalid tick, a tick can only be overwritten if it is the most recent one")

	// ErrInvalidSnapshotSize is returned by SetMaxSize for a non-positive
	// size.
	ErrInvalidSnapshotSize = errors.New("gridstate/snapshot: max size must be larger than 0")

	// ErrQueryNotPrepared is returned by Query when called without a
	// preceding successful Prepare.
	ErrQueryNotPrepared = errors.New("gridstate/snapshot: query must be called after prepare")

	// ErrQueryNoAttributes is returned by Prepare when the attribute list
	// is empty.
	ErrQueryNoAttributes = errors.New("gridstate/snapshot: attribute list for query must contain at least one entry")

	// ErrInvalidFrameState is returned by any operation that needs a bound
	// Frame when none has been set via SetFrame.
	ErrInvalidFrameState = errors.New("gridstate/snapshot: no frame bound")

	// ErrQueryResultNil is returned by Query when dest is nil.
	ErrQueryResultNil = errors.New("gridstate/snapshot: result destination is nil")
)
