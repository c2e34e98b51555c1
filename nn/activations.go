package nn

import "math"

// Sigmoid is the logistic squashing function 1 / (1 + e^-x).
// Unlike the steepened variants used by some neuroevolution libraries, the slope is fixed at 1:
// raw sensor readings and weighted sums pass through the same curve.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
