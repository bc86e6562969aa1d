package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"docchat-be/internal/apperr"
	"docchat-be/internal/entity"
)

func TestSessionLifecycle(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	sessionId, err := repo.Create(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sessionId == "" {
		t.Fatal("Create() returned empty session id")
	}

	exists, err := repo.Exists(ctx, sessionId)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v; want true, nil", exists, err)
	}

	if err := repo.Delete(ctx, sessionId); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, err = repo.Exists(ctx, sessionId)
	if err != nil || exists {
		t.Fatalf("Exists() after delete = %v, %v; want false, nil", exists, err)
	}

	// Deleting an unknown session is a no-op.
	if err := repo.Delete(ctx, sessionId); err != nil {
		t.Errorf("repeated Delete() error = %v, want nil", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	sessionId, err := repo.Create(ctx, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	exists, err := repo.Exists(ctx, sessionId)
	if err != nil || exists {
		t.Fatalf("Exists() after expiry = %v, %v; want false, nil", exists, err)
	}
	if _, err := repo.ListChunks(ctx, sessionId); !errors.Is(err, apperr.ErrSessionNotFound) {
		t.Errorf("ListChunks() after expiry error = %v, want ErrSessionNotFound", err)
	}
}

func TestChunkStorage(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	sessionId, _ := repo.Create(ctx, time.Hour)

	records := []entity.ChunkRecord{
		{Text: "first", Embedding: []float32{1, 0}},
		{Text: "second", Embedding: []float32{0, 1}},
	}
	for _, record := range records {
		if err := repo.AppendChunk(ctx, sessionId, record); err != nil {
			t.Fatalf("AppendChunk() error = %v", err)
		}
	}

	chunks, err := repo.ListChunks(ctx, sessionId)
	if err != nil {
		t.Fatalf("ListChunks() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Text != "first" || chunks[1].Text != "second" {
		t.Errorf("chunk order = [%q %q], want insertion order", chunks[0].Text, chunks[1].Text)
	}
}

func TestAppendChunkUnknownSession(t *testing.T) {
	repo := NewSessionRepository(5)

	err := repo.AppendChunk(context.Background(), "missing", entity.ChunkRecord{Text: "x"})
	if !errors.Is(err, apperr.ErrSessionNotFound) {
		t.Errorf("AppendChunk() error = %v, want ErrSessionNotFound", err)
	}
}

func TestHistoryTruncation(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	sessionId, _ := repo.Create(ctx, time.Hour)

	for i := 1; i <= 6; i++ {
		entry := entity.HistoryEntry{
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		}
		if err := repo.AppendHistory(ctx, sessionId, entry); err != nil {
			t.Fatalf("AppendHistory(%d) error = %v", i, err)
		}
	}

	history, err := repo.ListHistory(ctx, sessionId)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	// Oldest entry dropped, remaining entries stay chronological.
	for i, entry := range history {
		wantQ := fmt.Sprintf("q%d", i+2)
		if entry.Question != wantQ {
			t.Errorf("history[%d].Question = %q, want %q", i, entry.Question, wantQ)
		}
	}
}

func TestListSnapshotsAreIsolated(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	sessionId, _ := repo.Create(ctx, time.Hour)
	_ = repo.AppendChunk(ctx, sessionId, entity.ChunkRecord{Text: "before"})

	chunks, _ := repo.ListChunks(ctx, sessionId)
	_ = repo.AppendChunk(ctx, sessionId, entity.ChunkRecord{Text: "after"})

	if len(chunks) != 1 {
		t.Errorf("snapshot length = %d, want 1 (appends after the read must not leak in)", len(chunks))
	}
}
