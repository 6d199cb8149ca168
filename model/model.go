package model

import "fmt"

// Shared value types exchanged between the editing layer, the server and the
// solver. The JSON shapes double as the scene structure the front end saves
// and loads.

type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeRect   Shape = "rect"
)

// Material is an immutable set of physical constants. Cells and samples share
// materials by pointer; an edit must produce a new Material, never mutate one
// in place.
type Material struct {
	Name         string  `json:"name"`
	Conductivity float64 `json:"conductivity"`  // W/m·K
	SpecificHeat float64 `json:"specific_heat"` // J/kg·K
	Density      float64 `json:"density"`       // kg/m³

	// Only consumed by the rendering layer.
	Emissivity float64 `json:"emissivity,omitempty"`
	Thickness  float64 `json:"thickness,omitempty"`
}

// Diffusivity returns α = k/(ρ·c) in m²/s.
func (m *Material) Diffusivity() float64 {
	return m.Conductivity / (m.Density * m.SpecificHeat)
}

// SizeClass selects one of the two nominal sample sizes when layer geometry
// is given as explicit thicknesses instead of radius fractions.
type SizeClass string

const (
	SizeStandard SizeClass = "standard" // 2 in nominal outer radius
	SizeLarge    SizeClass = "large"    // 3 in nominal outer radius
)

func (s SizeClass) nominalRadiusInches() (float64, bool) {
	switch s {
	case SizeStandard:
		return 2.0, true
	case SizeLarge:
		return 3.0, true
	}
	return 0, false
}

// Sample is a layered cylindrical specimen sitting in the container.
// Positions and radii are in world units (render pixels).
type Sample struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`

	Core   *Material `json:"core"`
	Middle *Material `json:"middle"`
	Outer  *Material `json:"outer"`

	// Layer geometry, variant 1: fractions of Radius,
	// 0 < CoreFrac < MiddleFrac < OuterFrac <= 1.
	CoreFrac   float64 `json:"core_frac,omitempty"`
	MiddleFrac float64 `json:"middle_frac,omitempty"`
	OuterFrac  float64 `json:"outer_frac,omitempty"`

	// Layer geometry, variant 2: explicit per-layer thickness in inches on
	// top of a nominal size class. Used when SizeClass is non-empty.
	SizeClass       SizeClass `json:"size_class,omitempty"`
	MiddleThickness float64   `json:"middle_thickness,omitempty"`
	OuterThickness  float64   `json:"outer_thickness,omitempty"`

	InitialTemp float64 `json:"initial_temp"` // °F

	PeltierTarget float64 `json:"peltier_target,omitempty"` // °F
	PeltierOn     bool    `json:"peltier_on,omitempty"`

	// Derived each tick from the owned cells; not authoritative.
	CurrentTemp float64 `json:"current_temp,omitempty"` // °F
}

// LayerRadii resolves the nested layer radii in world units.
// pixelsPerInch converts thickness-based geometry; it is ignored in fraction
// mode. The returned radii satisfy core < middle < outer <= Radius, otherwise
// an error is returned.
func (s *Sample) LayerRadii(pixelsPerInch float64) (core, middle, outer float64, err error) {
	if s.SizeClass != "" {
		nominal, ok := s.SizeClass.nominalRadiusInches()
		if !ok {
			return 0, 0, 0, fmt.Errorf("sample %s: unknown size class %q", s.ID, s.SizeClass)
		}
		outer = nominal * pixelsPerInch
		middle = outer - s.OuterThickness*pixelsPerInch
		core = middle - s.MiddleThickness*pixelsPerInch
	} else {
		outer = s.OuterFrac * s.Radius
		middle = s.MiddleFrac * s.Radius
		core = s.CoreFrac * s.Radius
	}
	if !(core > 0 && core < middle && middle < outer) {
		return 0, 0, 0, fmt.Errorf("sample %s: layer radii not nested: core=%.2f middle=%.2f outer=%.2f",
			s.ID, core, middle, outer)
	}
	if outer > s.Radius {
		return 0, 0, 0, fmt.Errorf("sample %s: outer layer radius %.2f exceeds declared radius %.2f",
			s.ID, outer, s.Radius)
	}
	return core, middle, outer, nil
}

// Container bounds the simulated region. Width is the diameter when the shape
// is a circle; Height is ignored for circles.
type Container struct {
	Shape       Shape     `json:"shape"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height,omitempty"`
	Fill        *Material `json:"fill"`
	AmbientTemp float64   `json:"ambient_temp"` // °F

	// A liquid fill is held at LiquidTemp and acts as a fixed-temperature
	// boundary instead of a diffusing medium.
	LiquidFill bool    `json:"liquid_fill,omitempty"`
	LiquidTemp float64 `json:"liquid_temp,omitempty"` // °F
}

// Contains reports whether the world point (x, y) falls inside the container
// centered at (cx, cy).
func (c *Container) Contains(cx, cy, x, y float64) bool {
	dx, dy := x-cx, y-cy
	if c.Shape == ShapeCircle {
		r := c.Width / 2
		return dx*dx+dy*dy <= r*r
	}
	return dx >= -c.Width/2 && dx <= c.Width/2 && dy >= -c.Height/2 && dy <= c.Height/2
}

// Scene is the opaque JSON structure the editing layer persists and sends
// over the wire to (re)initialize the solver.
type Scene struct {
	Container    Container `json:"container"`
	Samples      []Sample  `json:"samples"`
	RenderWidth  int       `json:"render_width"`
	RenderHeight int       `json:"render_height"`
}

// Msg is the websocket control envelope.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
