// Package interference turns grid temperatures into a 0–100 severity score
// per sample pair. The metric samples the straight line between two samples'
// rim edges and combines how much of the gap is measurably elevated above
// ambient (coverage) with how elevated it is (intensity). Early interference
// shows as a few hot points, mature interference as a uniformly warm gap; the
// fixed 0.6/0.4 weighting is a tuned heuristic, not a physical law.
package interference

import (
	"math"

	"github.com/barendas1/Heat-Flow-Modeling/model"
)

const (
	rimBufferInches  = 1.0  // heat bleed matters slightly past the visible rim
	samplePoints     = 20   // probes along the rim-to-rim line
	haloThresholdF   = 1.5  // °F above ambient before a probe counts
	significantRiseF = 10.0 // °F mean elevation scoring full intensity
	coverageWeight   = 0.6
	intensityWeight  = 0.4
	reportThreshold  = 1.0 // minimum score worth a report line
)

// Reader is the solver surface the scorer needs: °F reads at world points,
// out-of-bounds resolving to ambient. *field.Field satisfies it.
type Reader interface {
	Ready() bool
	TempAt(x, y float64) float64
	Ambient() float64
}

// Policy selects which sample pairs Report considers.
type Policy string

const (
	PolicyAllPairs Policy = "all"
	PolicyAdjacent Policy = "adjacent"
)

// Scorer holds the geometry scale and pair policy. World units are render
// pixels; PixelsPerInch converts the rim buffer.
type Scorer struct {
	PixelsPerInch float64
	Policy        Policy
}

// NewScorer builds a scorer; unknown policy strings fall back to all pairs.
func NewScorer(pixelsPerInch float64, policy string) *Scorer {
	p := Policy(policy)
	if p != PolicyAdjacent {
		p = PolicyAllPairs
	}
	return &Scorer{PixelsPerInch: pixelsPerInch, Policy: p}
}

func (s *Scorer) rimRadius(sm *model.Sample) float64 {
	return sm.Radius + rimBufferInches*s.PixelsPerInch
}

// Score rates thermal interference between two samples on [0, 100].
// Touching or overlapping rims score 100 outright, independent of grid
// state; otherwise 20 probes along the rim-to-rim line feed the
// coverage/intensity blend. A gap with no probe above the halo threshold
// scores 0.
func (s *Scorer) Score(a, b *model.Sample, r Reader) float64 {
	rimA, rimB := s.rimRadius(a), s.rimRadius(b)
	dx, dy := b.X-a.X, b.Y-a.Y
	centerDist := math.Hypot(dx, dy)
	edgeDist := centerDist - rimA - rimB
	if edgeDist <= 0 {
		return 100
	}

	ux, uy := dx/centerDist, dy/centerDist
	startX, startY := a.X+ux*rimA, a.Y+uy*rimA
	ambient := r.Ambient()

	hits := 0
	var sumElevation float64
	for i := 0; i < samplePoints; i++ {
		t := float64(i) / float64(samplePoints-1)
		px, py := startX+ux*edgeDist*t, startY+uy*edgeDist*t
		elevation := r.TempAt(px, py) - ambient
		if elevation > haloThresholdF {
			hits++
			sumElevation += elevation
		}
	}
	if hits == 0 {
		return 0
	}

	coverage := 100 * float64(hits) / samplePoints
	intensity := math.Min(100, 100*(sumElevation/float64(hits))/significantRiseF)
	score := coverageWeight*coverage + intensityWeight*intensity
	return math.Min(100, math.Max(0, score))
}

// adjacent reports whether samples i and j have an open line of sight: no
// third sample's rim intersects the segment between their centers.
func (s *Scorer) adjacent(samples []*model.Sample, i, j int) bool {
	a, b := samples[i], samples[j]
	for k, c := range samples {
		if k == i || k == j {
			continue
		}
		if distToSegment(c.X, c.Y, a.X, a.Y, b.X, b.Y) < s.rimRadius(c) {
			return false
		}
	}
	return true
}

// distToSegment returns the distance from point (px, py) to the segment
// (ax, ay)–(bx, by).
func distToSegment(px, py, ax, ay, bx, by float64) float64 {
	vx, vy := bx-ax, by-ay
	lenSq := vx*vx + vy*vy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*vx + (py-ay)*vy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*vx), py-(ay+t*vy))
}
