package tahti

import (
	"math"
	"sort"
)

type (
	// AutomationClip modulates one addressable parameter over time. The
	// target is a string key into the parameter space enumerated by the
	// engine (track gain and pan plus per-effect numeric params).
	AutomationClip struct {
		TargetParameterID string            `yaml:"target_parameter_id" json:"target_parameter_id"`
		Points            []AutomationPoint `yaml:"points" json:"points"`
	}

	AutomationPoint struct {
		Tick  int     `yaml:"tick" json:"tick"`
		Value float64 `yaml:"value" json:"value"`
	}
)

// Copy makes a deep copy of an AutomationClip.
func (a *AutomationClip) Copy() AutomationClip {
	points := make([]AutomationPoint, len(a.Points))
	copy(points, a.Points)
	return AutomationClip{TargetParameterID: a.TargetParameterID, Points: points}
}

// SanitizePoints drops points with non-finite values or negative ticks and
// orders the rest by tick ascending.
func SanitizePoints(points []AutomationPoint) []AutomationPoint {
	ret := make([]AutomationPoint, 0, len(points))
	for _, p := range points {
		if p.Tick < 0 || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		ret = append(ret, p)
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Tick < ret[j].Tick })
	return ret
}
