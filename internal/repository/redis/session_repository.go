package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"docchat-be/internal/apperr"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
)

// SessionRepository stores session state in redis. The liveness marker, the
// chunk list and the history list live under separate keys sharing the
// session's TTL, so redis native expiry destroys the whole session at once
// and no sweep is needed.
//
// Keys: session:{id} (the JSON session record), session:{id}:chunks,
// session:{id}:history. Chunk and history records are JSON, appended with
// RPUSH so list order is append order.
type SessionRepository struct {
	client       *redis.Client
	historyLimit int
}

var _ contract.ISessionRepository = &SessionRepository{}

func NewSessionRepository(client *redis.Client, historyLimit int) *SessionRepository {
	return &SessionRepository{
		client:       client,
		historyLimit: historyLimit,
	}
}

func markerKey(sessionId string) string  { return "session:" + sessionId }
func chunksKey(sessionId string) string  { return "session:" + sessionId + ":chunks" }
func historyKey(sessionId string) string { return "session:" + sessionId + ":history" }

func (r *SessionRepository) Create(ctx context.Context, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	session := entity.Session{
		Id:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, markerKey(session.Id), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return session.Id, nil
}

func (r *SessionRepository) Exists(ctx context.Context, sessionId string) (bool, error) {
	n, err := r.client.Exists(ctx, markerKey(sessionId)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

// Delete removes the session and everything it owns. Deleting a session that
// does not exist is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionId string) error {
	err := r.client.Del(ctx,
		markerKey(sessionId),
		chunksKey(sessionId),
		historyKey(sessionId),
	).Err()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) AppendChunk(ctx context.Context, sessionId string, record entity.ChunkRecord) error {
	remaining, err := r.remainingTTL(ctx, sessionId)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal chunk record: %w", err)
	}

	// Keep the chunk list on the session clock so it never outlives the marker.
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, chunksKey(sessionId), data)
	if remaining > 0 {
		pipe.PExpire(ctx, chunksKey(sessionId), remaining)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chunk: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListChunks(ctx context.Context, sessionId string) ([]entity.ChunkRecord, error) {
	if _, err := r.remainingTTL(ctx, sessionId); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, chunksKey(sessionId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	records := make([]entity.ChunkRecord, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal([]byte(item), &records[i]); err != nil {
			return nil, fmt.Errorf("unmarshal chunk record %d: %w", i, err)
		}
	}
	return records, nil
}

// AppendHistory appends the entry and trims to the most recent historyLimit
// entries in one transaction, so a reader never observes more than the
// window.
func (r *SessionRepository) AppendHistory(ctx context.Context, sessionId string, entry entity.HistoryEntry) error {
	remaining, err := r.remainingTTL(ctx, sessionId)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, historyKey(sessionId), data)
	pipe.LTrim(ctx, historyKey(sessionId), int64(-r.historyLimit), -1)
	if remaining > 0 {
		pipe.PExpire(ctx, historyKey(sessionId), remaining)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListHistory(ctx context.Context, sessionId string) ([]entity.HistoryEntry, error) {
	if _, err := r.remainingTTL(ctx, sessionId); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, historyKey(sessionId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]entity.HistoryEntry, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal([]byte(item), &entries[i]); err != nil {
			return nil, fmt.Errorf("unmarshal history entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// remainingTTL doubles as the liveness check: a missing marker reports
// ErrSessionNotFound, a live one returns how long the session has left so
// derived keys can be kept on the same clock. A zero return means the marker
// carries no expiry and the derived keys should be left alone.
func (r *SessionRepository) remainingTTL(ctx context.Context, sessionId string) (time.Duration, error) {
	remaining, err := r.client.PTTL(ctx, markerKey(sessionId)).Result()
	if err != nil {
		return 0, fmt.Errorf("session ttl: %w", err)
	}
	if remaining < 0 {
		// go-redis passes the redis sentinels through: -1 means the key has
		// no expiry, -2 that it does not exist.
		if remaining == -1 {
			return 0, nil
		}
		return 0, apperr.ErrSessionNotFound
	}
	return remaining, nil
}
