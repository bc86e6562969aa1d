package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"docchat-be/internal/apperr"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
)

// SessionRepository keeps session state in a go-cache instance. Each session
// is one cache item with a per-item TTL; go-cache hides expired items from
// Get (lazy expiry) and a janitor purges them periodically, which together
// satisfy the store expiry contract without redis. Used for development and
// in the pipeline tests.
type SessionRepository struct {
	cache        *cache.Cache
	historyLimit int
}

var _ contract.ISessionRepository = &SessionRepository{}

// sessionState is the cached value for one session. The mutex serializes
// writers so append+truncate stays atomic per session.
type sessionState struct {
	mu      sync.Mutex
	chunks  []entity.ChunkRecord
	history []entity.HistoryEntry
}

func NewSessionRepository(historyLimit int) *SessionRepository {
	// Purge expired sessions every 10 minutes; per-session TTL is set on
	// Create, the cache default is only a fallback.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache:        c,
		historyLimit: historyLimit,
	}
}

func (r *SessionRepository) Create(_ context.Context, ttl time.Duration) (string, error) {
	sessionId := uuid.NewString()
	r.cache.Set(sessionId, &sessionState{}, ttl)
	return sessionId, nil
}

func (r *SessionRepository) Exists(_ context.Context, sessionId string) (bool, error) {
	_, found := r.cache.Get(sessionId)
	return found, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}

func (r *SessionRepository) AppendChunk(_ context.Context, sessionId string, record entity.ChunkRecord) error {
	state, err := r.get(sessionId)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.chunks = append(state.chunks, record)
	return nil
}

func (r *SessionRepository) ListChunks(_ context.Context, sessionId string) ([]entity.ChunkRecord, error) {
	state, err := r.get(sessionId)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	// Snapshot copy so callers never observe appends that happen after the read.
	chunks := make([]entity.ChunkRecord, len(state.chunks))
	copy(chunks, state.chunks)
	return chunks, nil
}

func (r *SessionRepository) AppendHistory(_ context.Context, sessionId string, entry entity.HistoryEntry) error {
	state, err := r.get(sessionId)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.history = append(state.history, entry)
	if len(state.history) > r.historyLimit {
		state.history = state.history[len(state.history)-r.historyLimit:]
	}
	return nil
}

func (r *SessionRepository) ListHistory(_ context.Context, sessionId string) ([]entity.HistoryEntry, error) {
	state, err := r.get(sessionId)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	history := make([]entity.HistoryEntry, len(state.history))
	copy(history, state.history)
	return history, nil
}

func (r *SessionRepository) get(sessionId string) (*sessionState, error) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*sessionState), nil
	}
	return nil, apperr.ErrSessionNotFound
}
