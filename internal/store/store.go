// Package store provides keyed persistence for study plans and topic sets.
// All writes are upserts with last-write-wins semantics keyed by user ID.
package store

import (
	"context"
	"errors"

	"github.com/studyloop/studyloop/internal/planner"
)

// ErrNotFound is returned when no record exists for a user ID.
var ErrNotFound = errors.New("record not found")

// PlanStore persists one current plan per user.
type PlanStore interface {
	Get(ctx context.Context, userID string) (planner.Plan, error)
	Put(ctx context.Context, userID string, plan planner.Plan) error
	Delete(ctx context.Context, userID string) error
}

// TopicStore persists the most recent topic set extracted for a user.
type TopicStore interface {
	Get(ctx context.Context, userID string) ([]planner.Topic, error)
	Put(ctx context.Context, userID string, topics []planner.Topic) error
	Delete(ctx context.Context, userID string) error
}
