package distance

import (
	"math"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// SquaredNorm returns dot(v, v).
func SquaredNorm(v []float32) float64 {
	return Dot(v, v)
}

// Cosine returns dot(a,b) / sqrt(dot(a,a) * dot(b,b)).
//
// Assumes vectors are the same length (caller's responsibility).
// If either vector has zero norm the result is 0.
func Cosine(a, b []float32) float64 {
	var ab, aa, bb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		ab += x * y
		aa += x * x
		bb += y * y
	}

	denom := math.Sqrt(aa * bb)
	if denom == 0 {
		return 0
	}
	return ab / denom
}
