package model

import "github.com/jonathan/fairpath/internal/vector"

// Features builds the scoring vector [user, occupation, user - occupation]
// from two combined vectors of equal length.
func Features(user, occupation []float64) []float64 {
	return vector.Concat(user, occupation, vector.Sub(user, occupation))
}

// FeatureDim is the scoring vector length for combined vectors of length n.
func FeatureDim(n int) int {
	return 3 * n
}
