package snapshot

import "github.com/gridstate/gridstate/core"

// queryParameters holds the arguments captured by Prepare until the
// matching Query call consumes and resets them. A nil slice means "use the
// default" (all ticks / all node instances).
type queryParameters struct {
	nodeID      core.NodeID
	ticks       []int64
	nodeIndices []core.NodeIndex
	attributes  []core.AttrID
}

// reset zeroes every field, including nil-ing the slices, so a stale
// Prepare call can never leak a previous query's selection into Query.
func (q *queryParameters) reset() {
	q.nodeID = 0
	q.ticks = nil
	q.nodeIndices = nil
	q.attributes = nil
}
