package field

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/barendas1/Heat-Flow-Modeling/material"
	"github.com/barendas1/Heat-Flow-Modeling/model"
)

// ErrNotInitialized is returned when the field is stepped before Initialize.
var ErrNotInitialized = errors.New("field: not initialized")

// Cell is one grid node. Temp/Next are the Jacobi double buffer, in °C.
type Cell struct {
	Temp     float64
	Next     float64
	Mat      *model.Material
	Boundary bool // temperature externally fixed, exempt from diffusion
	Owner    int  // index into the sample list, -1 when unowned
}

// Field owns the cell arena and the sample ownership cache. It has a single
// writer (Step) and any number of readers, all strictly between ticks;
// Initialize is a full exclusive rebuild.
type Field struct {
	cfg Config

	rows, cols int
	cells      []Cell // row-major, index r*cols+c

	container *model.Container
	samples   []*model.Sample
	owners    map[string][]int // sample ID -> owned cell indices
	clampC    []float64        // per-sample Peltier target, °C

	ambientC float64
	elapsed  float64 // simulated seconds since Initialize

	initialized bool
}

// New creates a field using the package configuration.
func New() *Field {
	return NewWithConfig(cfg)
}

// NewWithConfig creates a field with explicit tunables, bypassing the ini file.
func NewWithConfig(c Config) *Field {
	if c.Downsample < 1 {
		c.Downsample = 1
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return &Field{cfg: c}
}

func (f *Field) idx(r, c int) int { return r*f.cols + c }

// Initialize rebuilds the cell arena and the ownership cache for the given
// scene. It must be called before any Step or read, and again after any
// structural change to the container or the sample list; nothing is patched
// incrementally. Samples are classified in list order, first match wins, so
// overlapping placements are a caller precondition, not something the
// classifier resolves.
func (f *Field) Initialize(container *model.Container, samples []*model.Sample, renderW, renderH int) error {
	if container == nil {
		return errors.New("field: nil container")
	}
	if container.Fill == nil {
		return errors.New("field: container has no fill material")
	}
	ds := f.cfg.Downsample
	cols, rows := renderW/ds, renderH/ds
	if rows < 3 || cols < 3 {
		return fmt.Errorf("field: render surface %dx%d too small for downsample %d", renderW, renderH, ds)
	}

	type layerSet struct{ core, middle, outer float64 }
	layers := make([]layerSet, len(samples))
	for i, s := range samples {
		if s.Core == nil || s.Middle == nil || s.Outer == nil {
			return fmt.Errorf("field: sample %s is missing a layer material", s.ID)
		}
		core, middle, outer, err := s.LayerRadii(f.cfg.PixelsPerInch)
		if err != nil {
			return err
		}
		layers[i] = layerSet{core, middle, outer}
	}

	f.rows, f.cols = rows, cols
	f.cells = make([]Cell, rows*cols)
	f.container = container
	f.samples = samples
	f.owners = make(map[string][]int, len(samples))
	f.clampC = make([]float64, len(samples))
	f.ambientC = model.FToC(container.AmbientTemp)
	f.elapsed = 0

	cx, cy := float64(renderW)/2, float64(renderH)/2
	air := material.AmbientAir()
	fillC := model.FToC(container.AmbientTemp)
	if container.LiquidFill {
		fillC = model.FToC(container.LiquidTemp)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			wx, wy := float64(c*ds), float64(r*ds)
			cell := &f.cells[f.idx(r, c)]
			cell.Owner = -1

			if !container.Contains(cx, cy, wx, wy) {
				cell.Mat = air
				cell.Temp = f.ambientC
				cell.Boundary = true
				cell.Next = cell.Temp
				continue
			}

			owned := false
			for i, s := range samples {
				dx, dy := wx-s.X, wy-s.Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist > layers[i].outer {
					continue
				}
				switch {
				case dist <= layers[i].core:
					cell.Mat = s.Core
				case dist <= layers[i].middle:
					cell.Mat = s.Middle
				default:
					cell.Mat = s.Outer
				}
				cell.Temp = model.FToC(s.InitialTemp)
				cell.Owner = i
				f.owners[s.ID] = append(f.owners[s.ID], f.idx(r, c))
				owned = true
				break
			}
			if !owned {
				cell.Mat = container.Fill
				cell.Temp = fillC
				cell.Boundary = container.LiquidFill
			}
			cell.Next = cell.Temp
		}
	}

	f.initialized = true
	log.Infof("field rebuilt: %dx%d cells, %d samples", cols, rows, len(samples))
	for _, s := range samples {
		if len(f.owners[s.ID]) == 0 {
			log.Warnf("sample %s owns no cells; its temperature will read 0", s.ID)
		}
	}
	return nil
}

// Ready reports whether Initialize has completed.
func (f *Field) Ready() bool { return f.initialized }

// Elapsed returns simulated seconds since the last Initialize.
func (f *Field) Elapsed() float64 { return f.elapsed }

// Dims returns the grid dimensions (rows, cols); zero before Initialize.
func (f *Field) Dims() (int, int) { return f.rows, f.cols }

// Grid returns a fresh snapshot of the current temperatures in °F, or nil
// before Initialize.
func (f *Field) Grid() [][]float64 {
	if !f.initialized {
		return nil
	}
	grid := make([][]float64, f.rows)
	for r := 0; r < f.rows; r++ {
		row := make([]float64, f.cols)
		for c := 0; c < f.cols; c++ {
			row[c] = model.CToF(f.cells[f.idx(r, c)].Temp)
		}
		grid[r] = row
	}
	return grid
}

// TempAt returns the °F temperature of the cell covering the world point
// (x, y). Out-of-bounds reads and reads before Initialize resolve to the
// ambient temperature.
func (f *Field) TempAt(x, y float64) float64 {
	if !f.initialized || x < 0 || y < 0 {
		return f.Ambient()
	}
	c, r := int(x)/f.cfg.Downsample, int(y)/f.cfg.Downsample
	if r >= f.rows || c >= f.cols {
		return f.Ambient()
	}
	return model.CToF(f.cells[f.idx(r, c)].Temp)
}

// Ambient returns the container's ambient temperature in °F, or 70 before
// any Initialize.
func (f *Field) Ambient() float64 {
	if f.container == nil {
		return 70
	}
	return f.container.AmbientTemp
}
