// Package gridstate provides the ambient stack (logging, errors, metrics)
// shared by the gridstate subpackages: core, attribute, store, frame, and
// snapshot.
//
// gridstate itself holds no simulation state. The attribute store lives in
// package store, the snapshot ring in package snapshot. This package only
// wires the cross-cutting concerns those two packages accept as options.
package gridstate
