package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"docchat-be/internal/apperr"
)

type stubProvider struct {
	calls   int
	vectors [][]float32
	err     error
}

func (s *stubProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[:len(texts)], nil
}

func TestLazyConstructsOnce(t *testing.T) {
	stub := &stubProvider{vectors: [][]float32{{1, 2}, {3, 4}}}
	constructed := 0

	lazy := NewLazy(func() (EmbeddingProvider, error) {
		constructed++
		return stub, nil
	})

	for i := 0; i < 3; i++ {
		vectors, err := lazy.EmbedBatch(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("EmbedBatch() error = %v", err)
		}
		if len(vectors) != 2 {
			t.Fatalf("got %d vectors, want 2", len(vectors))
		}
	}

	if constructed != 1 {
		t.Errorf("constructor ran %d times, want 1", constructed)
	}
	if stub.calls != 3 {
		t.Errorf("provider calls = %d, want 3", stub.calls)
	}
}

func TestLazyConstructsOnceUnderConcurrency(t *testing.T) {
	constructed := 0
	lazy := NewLazy(func() (EmbeddingProvider, error) {
		constructed++
		return &stubProvider{vectors: [][]float32{{1}}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = lazy.EmbedBatch(context.Background(), []string{"x"})
		}()
	}
	wg.Wait()

	if constructed != 1 {
		t.Errorf("constructor ran %d times, want 1", constructed)
	}
}

func TestLazyCachesConstructionFailure(t *testing.T) {
	constructed := 0
	lazy := NewLazy(func() (EmbeddingProvider, error) {
		constructed++
		return nil, errors.New("no api key")
	})

	for i := 0; i < 2; i++ {
		_, err := lazy.EmbedBatch(context.Background(), []string{"a"})
		if !errors.Is(err, apperr.ErrEmbeddingUnavailable) {
			t.Fatalf("EmbedBatch() error = %v, want ErrEmbeddingUnavailable", err)
		}
	}

	if constructed != 1 {
		t.Errorf("constructor ran %d times, want 1; failures must be cached", constructed)
	}
}

func TestLazyWrapsProviderFailure(t *testing.T) {
	lazy := NewLazy(func() (EmbeddingProvider, error) {
		return &stubProvider{err: errors.New("backend down")}, nil
	})

	_, err := lazy.EmbedBatch(context.Background(), []string{"a"})
	if !errors.Is(err, apperr.ErrEmbeddingUnavailable) {
		t.Errorf("EmbedBatch() error = %v, want ErrEmbeddingUnavailable", err)
	}
}
