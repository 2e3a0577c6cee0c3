package snapshot

// ResultShape describes the dimensions of the tensor a Query call will
// fill, in the order ticks (slowest axis) x nodes x attributes x slots
// (fastest axis). A caller allocates a dest slice of length
// TickNumber*MaxNodeNumber*AttrNumber*MaxSlotNumber before calling Query.
type ResultShape struct {
	TickNumber    int
	MaxNodeNumber int
	AttrNumber    int
	MaxSlotNumber int
}

// Len returns the total number of float64 cells the shape describes.
func (s ResultShape) Len() int {
	return s.TickNumber * s.MaxNodeNumber * s.AttrNumber * s.MaxSlotNumber
}
