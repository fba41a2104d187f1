package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/studyloop/internal/planner"
)

func TestMemoryStore_PlanLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	first := planner.Plan{HorizonDays: 7, Method: "rule_based"}
	require.NoError(t, s.Put(ctx, "alice", first))

	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// Last write wins.
	second := planner.Plan{HorizonDays: 14, Method: "rule_based"}
	require.NoError(t, s.Put(ctx, "alice", second))
	got, err = s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = s.Get(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "alice"))
	_, err = s.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, "alice"))
}

func TestMemoryStore_TopicLifecycle(t *testing.T) {
	ctx := context.Background()
	topics := NewMemoryStore().Topics()

	_, err := topics.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	stored := []planner.Topic{{Name: "Algebra", DifficultyScore: 5}}
	require.NoError(t, topics.Put(ctx, "alice", stored))

	got, err := topics.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// The store holds a copy, not the caller's slice.
	stored[0].Name = "mutated"
	got, err = topics.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", got[0].Name)

	require.NoError(t, topics.Delete(ctx, "alice"))
	_, err = topics.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
