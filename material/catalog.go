package material

import (
	"sort"

	"github.com/barendas1/Heat-Flow-Modeling/model"
)

// Static catalog of bench substances. Values are room-temperature handbook
// constants; the solver treats them as temperature-independent.

var catalog = map[string]model.Material{
	"ambient air":       {Name: "ambient air", Conductivity: 0.026, SpecificHeat: 1005, Density: 1.2},
	"water":             {Name: "water", Conductivity: 0.60, SpecificHeat: 4186, Density: 1000},
	"mineral oil":       {Name: "mineral oil", Conductivity: 0.14, SpecificHeat: 1900, Density: 850},
	"aluminum":          {Name: "aluminum", Conductivity: 205, SpecificHeat: 900, Density: 2700, Emissivity: 0.09},
	"copper":            {Name: "copper", Conductivity: 385, SpecificHeat: 385, Density: 8960, Emissivity: 0.04},
	"stainless steel":   {Name: "stainless steel", Conductivity: 16, SpecificHeat: 500, Density: 7900, Emissivity: 0.35},
	"borosilicate":      {Name: "borosilicate", Conductivity: 1.2, SpecificHeat: 830, Density: 2230, Emissivity: 0.92},
	"agar gel":          {Name: "agar gel", Conductivity: 0.55, SpecificHeat: 4000, Density: 1030},
	"paraffin wax":      {Name: "paraffin wax", Conductivity: 0.25, SpecificHeat: 2100, Density: 900},
	"pvc":               {Name: "pvc", Conductivity: 0.19, SpecificHeat: 900, Density: 1380},
	"acrylic":           {Name: "acrylic", Conductivity: 0.20, SpecificHeat: 1470, Density: 1180},
	"foam insulation":   {Name: "foam insulation", Conductivity: 0.03, SpecificHeat: 1400, Density: 35},
	"cork":              {Name: "cork", Conductivity: 0.04, SpecificHeat: 1900, Density: 240},
	"silicone compound": {Name: "silicone compound", Conductivity: 0.8, SpecificHeat: 1100, Density: 2300},
}

// Lookup returns a fresh copy of the named material so callers can never
// mutate the catalog through a shared pointer.
func Lookup(name string) (*model.Material, bool) {
	m, ok := catalog[name]
	if !ok {
		return nil, false
	}
	return &m, true
}

// AmbientAir is the medium assigned to cells outside the container.
func AmbientAir() *model.Material {
	m := catalog["ambient air"]
	return &m
}

// Names lists the catalog in stable order, for the editing layer's pickers.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
