package vectorindex

import (
	"fmt"
	"sort"

	"docchat-be/internal/apperr"
)

const DefaultTopK = 3

// FlatIndex is an exact nearest-neighbor index over one session's chunk
// embeddings. It is built fresh from a snapshot of the session's chunk list
// for every query and discarded afterwards; per-session corpora are a single
// document, so exactness and simplicity beat amortized build cost here.
//
// The index holds a read-only view of the vectors it was built from and is
// never mutated after Build.
type FlatIndex struct {
	vectors [][]float32
	dim     int
}

// Build validates the corpus and returns an index over it. All vectors must
// share one dimensionality; a ragged corpus fails with
// apperr.ErrDimensionMismatch, an empty one with apperr.ErrEmptyCorpus.
func Build(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return nil, apperr.ErrEmptyCorpus
	}

	dim := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has length %d, corpus dimension is %d",
				apperr.ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	return &FlatIndex{
		vectors: vectors,
		dim:     dim,
	}, nil
}

// Search returns the indices of the min(k, corpus size) vectors nearest to
// query by ascending Euclidean (L2) distance. Ties break toward the lower
// original index, so results are fully deterministic. The query must have the
// corpus dimensionality.
func (idx *FlatIndex) Search(query []float32, k int) ([]int, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has length %d, corpus dimension is %d",
			apperr.ErrDimensionMismatch, len(query), idx.dim)
	}
	if k <= 0 {
		k = DefaultTopK
	}

	type candidate struct {
		index int
		dist  float64
	}

	candidates := make([]candidate, len(idx.vectors))
	for i, vec := range idx.vectors {
		candidates[i] = candidate{index: i, dist: l2SquaredDistance(query, vec)}
	}

	// Squared distance preserves the L2 ordering; the sqrt is skipped.
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].dist != candidates[b].dist {
			return candidates[a].dist < candidates[b].dist
		}
		return candidates[a].index < candidates[b].index
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	result := make([]int, k)
	for i := 0; i < k; i++ {
		result[i] = candidates[i].index
	}
	return result, nil
}

// Dimension returns the corpus dimensionality the index was built with.
func (idx *FlatIndex) Dimension() int {
	return idx.dim
}

func l2SquaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
