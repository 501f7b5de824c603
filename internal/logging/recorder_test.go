package logging

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_KeepsOrderAndLevels(t *testing.T) {
	rec := NewRecorder()
	ctx := context.Background()

	rec.Debug(ctx, "Retrieving todo with ID 1 for user 1.", "todo_id", 1)
	rec.Warn(ctx, "Unauthorized attempt to access todo with ID 1 by user ID 2.")
	rec.Info(ctx, "todo with ID 1 retrieved successfully.")
	rec.Error(ctx, "Failed to create todo.")

	entries := rec.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, slog.LevelDebug, entries[0].Level)
	assert.Equal(t, slog.LevelWarn, entries[1].Level)
	assert.Equal(t, slog.LevelInfo, entries[2].Level)
	assert.Equal(t, slog.LevelError, entries[3].Level)
	assert.Equal(t, []any{"todo_id", 1}, entries[0].Args)

	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
	assert.True(t, rec.Contains(slog.LevelInfo, "retrieved successfully"))
	assert.False(t, rec.Contains(slog.LevelDebug, "retrieved successfully"))
}

func TestRecorder_WithSharesBuffer(t *testing.T) {
	rec := NewRecorder()
	child := rec.With("component", "guard")

	child.Info(context.Background(), "hello", "k", "v")

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"component", "guard", "k", "v"}, entries[0].Args)
}

func TestRecorder_Reset(t *testing.T) {
	rec := NewRecorder()
	rec.Info(context.Background(), "one")
	rec.Reset()
	assert.Empty(t, rec.Entries())
}

func TestRecorder_ConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Info(context.Background(), "tick")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, rec.Count(slog.LevelInfo))
}
