package field

import (
	"math"
	"testing"

	"github.com/barendas1/Heat-Flow-Modeling/material"
	"github.com/barendas1/Heat-Flow-Modeling/model"
)

func testConfig() Config {
	return Config{
		Downsample:    4,
		DeltaT:        0.05,
		CellSize:      0.01,
		PixelsPerInch: 20,
		Workers:       4,
		PairPolicy:    "all",
	}
}

func mustLookup(t *testing.T, name string) *model.Material {
	t.Helper()
	m, ok := material.Lookup(name)
	if !ok {
		t.Fatalf("material %q missing from catalog", name)
	}
	return m
}

// benchContainer is a 600 px circular container with an insulating fill at
// 70 °F ambient, on a 600x600 render surface.
func benchContainer(t *testing.T) *model.Container {
	return &model.Container{
		Shape:       model.ShapeCircle,
		Width:       600,
		Fill:        mustLookup(t, "foam insulation"),
		AmbientTemp: 70,
	}
}

// benchSample is a 40 px all-aluminum layered sample.
func benchSample(t *testing.T, id string, x, y, tempF float64) *model.Sample {
	alu := mustLookup(t, "aluminum")
	return &model.Sample{
		ID: id, Name: id, X: x, Y: y, Radius: 40,
		Core: alu, Middle: alu, Outer: alu,
		CoreFrac: 0.4, MiddleFrac: 0.7, OuterFrac: 1.0,
		InitialTemp: tempF,
	}
}

func TestInitializeClassifiesCells(t *testing.T) {
	f := NewWithConfig(testConfig())
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}

	rows, cols := f.Dims()
	if rows != 150 || cols != 150 {
		t.Fatalf("dims = %dx%d, want 150x150", rows, cols)
	}

	// Corner cell (world 0,0) is outside the circle: ambient boundary.
	corner := f.cells[f.idx(0, 0)]
	if !corner.Boundary || corner.Mat.Name != "ambient air" {
		t.Errorf("corner cell: boundary=%v mat=%q", corner.Boundary, corner.Mat.Name)
	}
	if math.Abs(corner.Temp-model.FToC(70)) > 1e-9 {
		t.Errorf("corner temp %v, want ambient", corner.Temp)
	}

	// Sample center (world 300,300 -> cell 75,75) is owned core material.
	center := f.cells[f.idx(75, 75)]
	if center.Owner != 0 || center.Boundary {
		t.Errorf("center cell: owner=%d boundary=%v", center.Owner, center.Boundary)
	}
	if math.Abs(center.Temp-model.FToC(110)) > 1e-9 {
		t.Errorf("center temp %v, want initial sample temp", center.Temp)
	}

	// A cell between sample and wall is non-boundary fill.
	fill := f.cells[f.idx(75, 110)] // world (440, 300), 140 px from sample center
	if fill.Owner != -1 || fill.Boundary || fill.Mat.Name != "foam insulation" {
		t.Errorf("fill cell: owner=%d boundary=%v mat=%q", fill.Owner, fill.Boundary, fill.Mat.Name)
	}

	// Ownership cache roughly matches the sample disc area: radius 40 px is
	// 10 cells, about 314 cells.
	owned := f.OwnedCellCount("s1")
	if owned < 250 || owned > 380 {
		t.Errorf("owned cell count %d, want ~314", owned)
	}
}

func TestInitializeLayerAssignment(t *testing.T) {
	f := NewWithConfig(testConfig())
	core := mustLookup(t, "copper")
	middle := mustLookup(t, "agar gel")
	outer := mustLookup(t, "pvc")
	s := &model.Sample{
		ID: "s1", X: 300, Y: 300, Radius: 40,
		Core: core, Middle: middle, Outer: outer,
		CoreFrac: 0.4, MiddleFrac: 0.7, OuterFrac: 1.0,
		InitialTemp: 110,
	}
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}

	// Radial distances from (75,75) in cells: core <= 4, middle <= 7, outer <= 10.
	cases := []struct {
		r, c int
		want string
	}{
		{75, 75, "copper"},    // dist 0
		{75, 78, "copper"},    // 12 px
		{75, 80, "agar gel"},  // 20 px
		{75, 83, "pvc"},       // 32 px
		{75, 84, "pvc"},       // 36 px
	}
	for _, tc := range cases {
		got := f.cells[f.idx(tc.r, tc.c)].Mat.Name
		if got != tc.want {
			t.Errorf("cell (%d,%d) material %q, want %q", tc.r, tc.c, got, tc.want)
		}
	}
}

func TestLiquidFillIsBoundary(t *testing.T) {
	f := NewWithConfig(testConfig())
	c := benchContainer(t)
	c.Fill = mustLookup(t, "water")
	c.LiquidFill = true
	c.LiquidTemp = 55
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(c, []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}

	fill := f.cells[f.idx(75, 110)]
	if !fill.Boundary {
		t.Fatal("liquid fill cell not flagged boundary")
	}
	if math.Abs(fill.Temp-model.FToC(55)) > 1e-9 {
		t.Errorf("liquid fill temp %v, want 55F", model.CToF(fill.Temp))
	}

	for i := 0; i < 50; i++ {
		if _, err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := f.cells[f.idx(75, 110)].Temp; math.Abs(got-model.FToC(55)) > 1e-9 {
		t.Errorf("liquid fill drifted to %vF after stepping", model.CToF(got))
	}
}

func TestBoundaryInvariance(t *testing.T) {
	f := NewWithConfig(testConfig())
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}

	before := make([]float64, len(f.cells))
	for i, cell := range f.cells {
		before[i] = cell.Temp
	}
	for i := 0; i < 50; i++ {
		if _, err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}
	for i, cell := range f.cells {
		if cell.Boundary && cell.Temp != before[i] {
			t.Fatalf("boundary cell %d moved from %v to %v", i, before[i], cell.Temp)
		}
	}
}

func TestStepBeforeInitialize(t *testing.T) {
	f := NewWithConfig(testConfig())
	if _, err := f.Step(); err != ErrNotInitialized {
		t.Errorf("Step error = %v, want ErrNotInitialized", err)
	}
	if f.Grid() != nil {
		t.Error("Grid before Initialize not nil")
	}
	if got := f.SampleTemp("s1"); got != 0 {
		t.Errorf("SampleTemp before Initialize = %v, want 0", got)
	}
	if got := f.TempAt(10, 10); got != 70 {
		t.Errorf("TempAt before Initialize = %v, want default ambient", got)
	}
}

func TestSampleWithNoCellsReadsZero(t *testing.T) {
	f := NewWithConfig(testConfig())
	inside := benchSample(t, "in", 300, 300, 110)
	outside := benchSample(t, "out", 2000, 2000, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{inside, outside}, 600, 600); err != nil {
		t.Fatal(err)
	}
	if n := f.OwnedCellCount("out"); n != 0 {
		t.Fatalf("misplaced sample owns %d cells", n)
	}
	if got := f.SampleTemp("out"); got != 0 {
		t.Errorf("SampleTemp for cell-less sample = %v, want 0 sentinel", got)
	}
}

func TestAggregationWithinOwnedRange(t *testing.T) {
	f := NewWithConfig(testConfig())
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 25; i++ {
		if _, err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, i := range f.owners["s1"] {
		tf := model.CToF(f.cells[i].Temp)
		min = math.Min(min, tf)
		max = math.Max(max, tf)
	}
	got := f.SampleTemp("s1")
	if got < min-1e-9 || got > max+1e-9 {
		t.Errorf("SampleTemp %v outside owned cell range [%v, %v]", got, min, max)
	}
}

func TestGridSnapshotIsFahrenheit(t *testing.T) {
	f := NewWithConfig(testConfig())
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}
	grid := f.Grid()
	if len(grid) != 150 || len(grid[0]) != 150 {
		t.Fatalf("snapshot dims %dx%d", len(grid), len(grid[0]))
	}
	if math.Abs(grid[75][75]-110) > 1e-9 {
		t.Errorf("sample center reads %vF, want 110", grid[75][75])
	}
	if math.Abs(grid[75][110]-70) > 1e-9 {
		t.Errorf("fill reads %vF, want 70", grid[75][110])
	}
	if math.Abs(f.TempAt(300, 300)-110) > 1e-9 {
		t.Errorf("TempAt sample center = %v", f.TempAt(300, 300))
	}
	if got := f.TempAt(-50, 300); got != 70 {
		t.Errorf("out-of-bounds TempAt = %v, want ambient", got)
	}
}

func TestReinitializeResetsElapsed(t *testing.T) {
	f := NewWithConfig(testConfig())
	s := benchSample(t, "s1", 300, 300, 110)
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if f.Elapsed() == 0 {
		t.Fatal("elapsed did not advance")
	}
	if err := f.Initialize(benchContainer(t), []*model.Sample{s}, 600, 600); err != nil {
		t.Fatal(err)
	}
	if f.Elapsed() != 0 {
		t.Errorf("elapsed after reinitialize = %v, want 0", f.Elapsed())
	}
	if math.Abs(f.SampleTemp("s1")-110) > 1e-9 {
		t.Errorf("sample temp after reinitialize = %v, want 110", f.SampleTemp("s1"))
	}
}
