package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the document chat pipeline. Every component raises its
// own sentinel (wrapped with the underlying cause where there is one) and the
// layers above match with errors.Is instead of reinterpreting.
var (
	// ErrSessionNotFound: unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidDocumentType: uploaded payload is not a supported document type.
	ErrInvalidDocumentType = errors.New("invalid document type")

	// ErrExtraction: the document could not be parsed, or yielded no text.
	ErrExtraction = errors.New("text extraction failed")

	// ErrNoDocument: Ask called before any document was ingested.
	ErrNoDocument = errors.New("no document uploaded for session")

	// ErrEmptyCorpus: the vector index was given zero chunk records.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDimensionMismatch: query and corpus embeddings disagree on length.
	// Should never happen with a consistent embedder; bug-class if seen.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable: the embedding backend could not be initialized
	// or reached. Retryable at a higher layer.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrUnsupportedProvider: unrecognized generation provider in config.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")

	// ErrGeneration: the generation backend call itself failed.
	ErrGeneration = errors.New("answer generation failed")
)

// Wrap attaches a cause to a sentinel so callers can still match the sentinel
// with errors.Is while the log line keeps the backend detail.
func Wrap(sentinel error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}

// Reason returns the machine-readable reason string for a known sentinel,
// used by the HTTP error middleware. Unknown errors map to "internal".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrInvalidDocumentType):
		return "invalid_document_type"
	case errors.Is(err, ErrExtraction):
		return "extraction_failed"
	case errors.Is(err, ErrNoDocument):
		return "no_document"
	case errors.Is(err, ErrEmptyCorpus):
		return "empty_corpus"
	case errors.Is(err, ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, ErrEmbeddingUnavailable):
		return "embedding_unavailable"
	case errors.Is(err, ErrUnsupportedProvider):
		return "unsupported_provider"
	case errors.Is(err, ErrGeneration):
		return "generation_failed"
	default:
		return "internal"
	}
}
