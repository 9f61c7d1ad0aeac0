package ml

import "math"

// SparseVector is a row of the feature matrix. Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

func (v SparseVector) Len() int { return len(v.Indices) }

// Dot multiplies v with a dense weight vector. Indices past the end of w are
// skipped.
func (v SparseVector) Dot(w []float64) float64 {
	var sum float64
	for k, idx := range v.Indices {
		if idx < len(w) {
			sum += w[idx] * v.Values[k]
		}
	}
	return sum
}

func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// normalize scales v to unit L2 norm in place. The zero vector is left as is.
func (v SparseVector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for k := range v.Values {
		v.Values[k] /= norm
	}
}
