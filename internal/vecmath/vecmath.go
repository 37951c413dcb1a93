// Package vecmath holds the small vector arithmetic shared by the metrics.
package vecmath

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Centroid returns the elementwise mean of vecs. All vectors must share the
// same length. Returns nil for an empty input.
func Centroid(vecs [][]float64) []float64 {
	if len(vecs) == 0 {
		return nil
	}
	out := make([]float64, len(vecs[0]))
	for _, v := range vecs {
		floats.Add(out, v)
	}
	floats.Scale(1/float64(len(vecs)), out)
	return out
}

// Cosine returns the cosine similarity of a and b. Zero vectors yield 0.
func Cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// Euclidean returns the L2 norm of a-b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Normalize returns a unit-length copy of v. A zero vector is copied as-is.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	n := floats.Norm(out, 2)
	if n > 0 {
		floats.Scale(1/n, out)
	}
	return out
}

// Ranks returns the 1-based ranks of xs, averaging the rank over exact ties.
func Ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	ranks := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
