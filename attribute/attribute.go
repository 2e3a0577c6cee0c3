// Package attribute defines the scalar cell type stored by
// store.AttributeStore and copied into snapshot.SnapshotList.
package attribute

import "math"

// Attribute is a tagged scalar: a float64 value plus a distinguished
// NaN/empty state. A zero-value Attribute is NaN, matching
// default-constructed cells being NaN. The empty state is tracked with an
// explicit flag rather than a NaN float bit pattern, because Go's float64
// zero value is 0.0, not NaN — a bit-pattern-only encoding could not
// satisfy the zero-value contract.
type Attribute struct {
	value float64
	valid bool
}

// NaN returns an Attribute in the empty/unwritten state. Equivalent to the
// zero value.
func NaN() Attribute {
	return Attribute{}
}

// Of returns an Attribute holding v. Passing math.NaN() is equivalent to
// calling NaN().
func Of(v float64) Attribute {
	if math.IsNaN(v) {
		return Attribute{}
	}
	return Attribute{value: v, valid: true}
}

// IsNaN reports whether the cell has never been written, or has been
// explicitly cleared.
func (a Attribute) IsNaN() bool {
	return !a.valid
}

// Set writes v into the cell. Passing math.NaN() clears it.
func (a *Attribute) Set(v float64) {
	if math.IsNaN(v) {
		*a = Attribute{}
		return
	}
	a.value = v
	a.valid = true
}

// Clear resets the cell to the empty/NaN state.
func (a *Attribute) Clear() {
	*a = Attribute{}
}

// Float64 returns the cell's value as a float64. Returns math.NaN() for an
// empty cell.
func (a Attribute) Float64() float64 {
	if !a.valid {
		return math.NaN()
	}
	return a.value
}

// Float32 returns the cell's value narrowed to float32. Returns a float32
// NaN for an empty cell.
func (a Attribute) Float32() float32 {
	return float32(a.Float64())
}

// String renders the cell the way snapshot/csv.go renders it: "nan" for an
// empty cell, otherwise the float64 in Go's default %v format.
func (a Attribute) String() string {
	if a.IsNaN() {
		return "nan"
	}
	return formatFloat(a.value)
}
