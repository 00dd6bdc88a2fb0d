package rules

import "math"

// ComputeVSWR derives the voltage standing-wave ratio from forward and
// reflected power. A zero reflected reading is a perfect match (1.0).
// Reflected power at or above forward power has no physical VSWR; the
// positive-infinity sentinel is a normal return value, not an error.
func ComputeVSWR(powerOutput, reflected float64) float64 {
	if reflected == 0 {
		return 1.0
	}
	if reflected >= powerOutput {
		return math.Inf(1)
	}
	gamma := math.Sqrt(reflected / powerOutput)
	return math.Round((1+gamma)/(1-gamma)*100) / 100
}
