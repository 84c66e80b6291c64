package evaluator

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs float drift when checking that a weight
// table sums to one.
const weightSumTolerance = 1e-9

// Weights maps metric names to their contribution in the weighted
// score. A valid table is non-empty, has every weight in [0, 1], and
// sums to 1.0 within tolerance.
type Weights map[string]float64

// Validate reports whether w is a usable weight table.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("evaluator: weight table is empty")
	}
	sum := 0.0
	for name, v := range w {
		if name == "" {
			return fmt.Errorf("evaluator: weight table has empty metric name")
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("evaluator: weight for %q is %v, want [0, 1]", name, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("evaluator: weights sum to %v, want 1.0", sum)
	}
	return nil
}

// Score computes the weighted sum of metrics. Metrics missing from m
// contribute zero; metrics absent from the table are ignored.
func (w Weights) Score(m MetricScore) float64 {
	score := 0.0
	for name, weight := range w {
		score += weight * m[name]
	}
	return score
}
