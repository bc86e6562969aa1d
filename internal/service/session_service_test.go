package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/memory"
)

func TestSessionCreateAndDelete(t *testing.T) {
	repo := memory.NewSessionRepository(5)
	svc := NewSessionService(repo, time.Hour, logger.NewNopLogger())
	ctx := context.Background()

	resp, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.SessionId)

	exists, err := repo.Exists(ctx, resp.SessionId)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Delete(ctx, resp.SessionId))
	exists, err = repo.Exists(ctx, resp.SessionId)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again must still succeed.
	assert.NoError(t, svc.Delete(ctx, resp.SessionId))
}

func TestSessionIdsAreUnique(t *testing.T) {
	repo := memory.NewSessionRepository(5)
	svc := NewSessionService(repo, time.Hour, logger.NewNopLogger())
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		resp, err := svc.Create(ctx)
		require.NoError(t, err)
		assert.False(t, seen[resp.SessionId], "duplicate session id %s", resp.SessionId)
		seen[resp.SessionId] = true
	}
}
