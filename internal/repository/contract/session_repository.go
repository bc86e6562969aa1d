package contract

import (
	"context"
	"time"

	"docchat-be/internal/entity"
)

// ISessionRepository is the session store contract. All persisted state
// (liveness, the ordered chunk list, the bounded history list) is scoped by
// session id and expires with it.
//
// Every operation on an unknown or expired session id fails with
// apperr.ErrSessionNotFound, except Create, Exists and Delete which are
// precondition-free (Delete is idempotent). AppendHistory atomically appends
// and truncates so len(history) <= the configured window after any write.
type ISessionRepository interface {
	Create(ctx context.Context, ttl time.Duration) (string, error)
	Exists(ctx context.Context, sessionId string) (bool, error)
	Delete(ctx context.Context, sessionId string) error

	AppendChunk(ctx context.Context, sessionId string, record entity.ChunkRecord) error
	ListChunks(ctx context.Context, sessionId string) ([]entity.ChunkRecord, error)

	AppendHistory(ctx context.Context, sessionId string, entry entity.HistoryEntry) error
	ListHistory(ctx context.Context, sessionId string) ([]entity.HistoryEntry, error)
}
