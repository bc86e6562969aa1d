package embedding

import (
	"context"
	"sync"

	"docchat-be/internal/apperr"
)

// Lazy defers construction of an EmbeddingProvider until the first EmbedBatch
// call and then reuses the one instance for the life of the process. Provider
// setup can be expensive (model warm-up, credential checks), so it is paid
// once no matter how many requests race on first use: sync.Once is the
// initialization gate. A construction failure is cached and every call after
// it reports apperr.ErrEmbeddingUnavailable instead of retrying the setup.
//
// Lazy is an injected dependency, not package-global state; the container
// builds exactly one and hands it to the services that embed text.
type Lazy struct {
	construct func() (EmbeddingProvider, error)

	once     sync.Once
	provider EmbeddingProvider
	initErr  error
}

func NewLazy(construct func() (EmbeddingProvider, error)) *Lazy {
	return &Lazy{construct: construct}
}

func (l *Lazy) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	l.once.Do(func() {
		l.provider, l.initErr = l.construct()
	})
	if l.initErr != nil {
		return nil, apperr.Wrap(apperr.ErrEmbeddingUnavailable, l.initErr)
	}

	vectors, err := l.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrEmbeddingUnavailable, err)
	}
	return vectors, nil
}
