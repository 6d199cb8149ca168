package interference

import (
	"fmt"

	"github.com/barendas1/Heat-Flow-Modeling/model"
)

const (
	msgNotStarted = "no interference data: the simulation has not started yet"
	msgNone       = "no interference detected between any samples"
)

// Report scores every pair the policy admits and returns one line per pair
// whose score exceeds the reporting threshold, in pair order. When nothing
// qualifies it returns a single line, distinguishing a simulation that has
// not stepped yet from one that is running cleanly. elapsed is simulated
// seconds since initialization.
func (s *Scorer) Report(samples []*model.Sample, elapsed float64, r Reader) []string {
	if r == nil || !r.Ready() || elapsed == 0 {
		return []string{msgNotStarted}
	}

	var lines []string
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			if s.Policy == PolicyAdjacent && !s.adjacent(samples, i, j) {
				continue
			}
			score := s.Score(samples[i], samples[j], r)
			if score <= reportThreshold {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s <-> %s: interference %.1f/100",
				displayName(samples[i]), displayName(samples[j]), score))
		}
	}
	if len(lines) == 0 {
		return []string{msgNone}
	}
	return lines
}

func displayName(s *model.Sample) string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
