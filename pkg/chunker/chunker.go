package chunker

import (
	"fmt"
	"strings"
)

const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Split cuts text into overlapping windows of chunkSize whitespace tokens.
// The window advances by chunkSize-overlap tokens per step, starting at 0,
// until the window start reaches the token count. The last chunk may be
// shorter than chunkSize. Identical input and configuration always produce
// the same ordered sequence; the position of a chunk in the result is its
// retrieval index downstream.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size, got overlap=%d size=%d", overlap, chunkSize)
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
	}
	return chunks, nil
}
