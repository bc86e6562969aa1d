package embedding

import "context"

// EmbeddingProvider maps an ordered batch of texts to an ordered, same-length
// batch of fixed-dimensionality vectors. Vector i always corresponds to
// texts[i]; every vector produced by one provider has the same length.
type EmbeddingProvider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
