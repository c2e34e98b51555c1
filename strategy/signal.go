package strategy

import "math"

// DecodeSignal quantizes value, assumed in [0,1], into one of buckets integers.
// The top bucket is closed: a value of exactly 1 maps to buckets-1, not buckets.
// Out-of-range values are clipped to the first or last bucket.
func DecodeSignal(value float64, buckets int) int {
	if buckets <= 1 || math.IsNaN(value) || value <= 0 {
		return 0
	}
	b := int(math.Floor(value * float64(buckets)))
	return min(b, buckets-1)
}

// DecodeActionKind maps an action output onto the five kinds in fifths:
// [0,0.2) DISCARD, [0.2,0.4) DRAW, [0.4,0.6) KNOCK, [0.6,0.8) KNOCK-GIN, [0.8,1] PICKUP-FROM-DISCARD.
func DecodeActionKind(value float64) Kind {
	return Kind(DecodeSignal(value, numKinds))
}
