package field

// Comparator scores a pair of record values into dst, which spans exactly
// the descriptor's slots in the feature vector.
type Comparator func(a, b any, dst []float64)

// Scalar adapts a single-score function to a Comparator.
func Scalar(fn func(a, b any) float64) Comparator {
	return func(a, b any, dst []float64) {
		dst[0] = fn(a, b)
	}
}
