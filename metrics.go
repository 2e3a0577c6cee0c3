package gridstate

import "time"

// MetricsObserver observes AttributeStore and SnapshotList internals for
// operational monitoring. Every method is advisory: implementations must
// not block or panic, since calls happen inline on the hot path: store and
// snapshot operations never suspend.
type MetricsObserver interface {
	// OnArrange is called after each AttributeStore.Arrange compaction pass.
	OnArrange(dur time.Duration, holesClosed int)

	// OnGrow is called after the cells slice or the snapshot backing vector
	// grows. what is "cells" or "attr_store".
	OnGrow(what string, oldCap, newCap int)

	// OnTakeSnapshot is called after each SnapshotList.TakeSnapshot call.
	OnTakeSnapshot(dur time.Duration, evictedOldest bool)

	// OnQuery is called after each SnapshotList.Query call.
	OnQuery(dur time.Duration, cellsRead int)
}

// NoopMetricsObserver discards every observation. It is the
// zero-configuration default for store.AttributeStore and
// snapshot.SnapshotList.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnArrange(time.Duration, int)       {}
func (NoopMetricsObserver) OnGrow(string, int, int)            {}
func (NoopMetricsObserver) OnTakeSnapshot(time.Duration, bool) {}
func (NoopMetricsObserver) OnQuery(time.Duration, int)         {}
