package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Update(ctx, "missing", func(*Job) {}), ErrNotFound)

	j := &Job{ID: "j1", Mode: search.Weighted, Status: StatusRunning, Total: 10}
	require.NoError(t, s.Save(ctx, j))
	j.Status = StatusFailed // caller copy is detached

	got, err := s.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "j1", func(j *Job) { j.Done++ })
		}()
	}
	wg.Wait()

	got, err = s.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Done)
}
