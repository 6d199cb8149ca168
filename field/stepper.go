package field

import (
	"sync"

	"github.com/barendas1/Heat-Flow-Modeling/model"
)

// Step advances the field by one DeltaT using the explicit finite-difference
// heat equation and returns the resulting °F snapshot. It is synchronous and
// non-reentrant: no reader or second Step may run while a Step is in flight.
//
// Every interior non-boundary cell gets
//
//	next = T + α·(T_up + T_down + T_left + T_right − 4·T)/Δx²·Δt
//
// computed entirely from the prior-tick buffer, so the row bands below can
// run concurrently without reading each other's writes. Peltier-clamped
// cells are forced to their target before the general update; neighbors still
// see the clamped cell's prior-tick value, which is the point of the double
// buffer. Perimeter cells and boundary cells keep their initialization
// temperature.
//
// Stability (α·Δt/Δx² ≤ 0.25 for the stiffest material) is a configuration
// precondition, not checked here.
func (f *Field) Step() ([][]float64, error) {
	if !f.initialized {
		return nil, ErrNotInitialized
	}

	for i, s := range f.samples {
		if s.PeltierOn {
			f.clampC[i] = model.FToC(s.PeltierTarget)
		}
	}

	interior := f.rows - 2
	workers := f.cfg.Workers
	if workers > interior {
		workers = interior
	}
	band := interior / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		first := 1 + w*band
		last := first + band
		if w == workers-1 {
			last = f.rows - 1
		}
		go func(first, last int) {
			f.stepRows(first, last)
			wg.Done()
		}(first, last)
	}
	wg.Wait()

	for i := range f.cells {
		f.cells[i].Temp = f.cells[i].Next
	}
	f.elapsed += f.cfg.DeltaT

	for _, s := range f.samples {
		s.CurrentTemp = f.SampleTemp(s.ID)
	}
	return f.Grid(), nil
}

// stepRows computes the write buffer for rows [first, last), interior
// columns only. It reads nothing but the prior-tick Temp values.
func (f *Field) stepRows(first, last int) {
	dx2 := f.cfg.CellSize * f.cfg.CellSize
	dt := f.cfg.DeltaT
	for r := first; r < last; r++ {
		for c := 1; c < f.cols-1; c++ {
			i := f.idx(r, c)
			cell := &f.cells[i]
			if cell.Boundary {
				continue
			}
			if cell.Owner >= 0 && f.samples[cell.Owner].PeltierOn {
				cell.Next = f.clampC[cell.Owner]
				continue
			}
			lap := (f.cells[i-f.cols].Temp + f.cells[i+f.cols].Temp +
				f.cells[i-1].Temp + f.cells[i+1].Temp - 4*cell.Temp) / dx2
			cell.Next = cell.Temp + cell.Mat.Diffusivity()*lap*dt
		}
	}
}
