package features

import (
	"gonum.org/v1/gonum/floats"
)

// normEpsilon guards against dividing by the norm of silent or constant
// vectors. Anything below this is treated as a zero vector.
const normEpsilon = 1e-12

// MeanVector computes the element-wise mean of a set of equal-length
// vectors. Returns nil for an empty set.
func MeanVector(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}

	mean := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		if len(v) != len(mean) {
			continue
		}
		floats.Add(mean, v)
	}
	floats.Scale(1/float64(len(vectors)), mean)

	return mean
}

// Normalize zero-means and L2-normalizes v in place. Removing the DC
// component first keeps MFCC mean vectors from matching on offset alone;
// unit scaling makes the subsequent dot product a cosine similarity.
// Zero and constant vectors are left as all-zero.
func Normalize(v []float64) {
	if len(v) == 0 {
		return
	}

	mean := floats.Sum(v) / float64(len(v))
	floats.AddConst(-mean, v)

	norm := floats.Norm(v, 2)
	if norm < normEpsilon {
		for i := range v {
			v[i] = 0
		}
		return
	}
	floats.Scale(1/norm, v)
}

// Cosine returns the cosine similarity of two vectors. Vectors of
// mismatched length or (near-)zero norm score 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA < normEpsilon || normB < normEpsilon {
		return 0
	}

	sim := floats.Dot(a, b) / (normA * normB)

	// Clamp floating point spill outside [-1, 1]
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}

	return sim
}
