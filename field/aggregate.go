package field

import "github.com/barendas1/Heat-Flow-Modeling/model"

// SampleTemp returns the arithmetic mean temperature of the sample's owned
// cells in °F. A sample that owns no cells (unknown ID, or placed entirely
// outside the grid) reads as 0; this is a recoverable degenerate state, not
// an error.
func (f *Field) SampleTemp(id string) float64 {
	if !f.initialized {
		return 0
	}
	cells := f.owners[id]
	if len(cells) == 0 {
		return 0
	}
	var sum float64
	for _, i := range cells {
		sum += f.cells[i].Temp
	}
	return model.CToF(sum / float64(len(cells)))
}

// OwnedCellCount reports how many grid cells the sample occupies.
func (f *Field) OwnedCellCount(id string) int {
	return len(f.owners[id])
}
