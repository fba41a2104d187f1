package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyloop/studyloop/internal/planner"
)

// MySQLStore persists one plan row per user in the study_plans table. The
// plan itself is stored as a JSON payload; the schema only indexes identity
// columns.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

type planRow struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Payload []byte `db:"payload"`
}

func (s *MySQLStore) Get(ctx context.Context, userID string) (planner.Plan, error) {
	var plan planner.Plan

	var row planRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, user_id, payload FROM study_plans WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return plan, ErrNotFound
	}
	if err != nil {
		return plan, fmt.Errorf("db.GetContext(study_plans) > %w", err)
	}
	if err := json.Unmarshal(row.Payload, &plan); err != nil {
		return plan, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return plan, nil
}

func (s *MySQLStore) Put(ctx context.Context, userID string, plan planner.Plan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO study_plans (id, user_id, payload)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), userID, payload); err != nil {
		return fmt.Errorf("db.ExecContext(study_plans) > %w", err)
	}
	return nil
}

func (s *MySQLStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM study_plans WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("db.ExecContext(delete study_plans) > %w", err)
	}
	return nil
}

// Topics returns a TopicStore backed by the study_topics table.
func (s *MySQLStore) Topics() TopicStore {
	return &mysqlTopicStore{db: s.db}
}

type mysqlTopicStore struct {
	db *sqlx.DB
}

func (s *mysqlTopicStore) Get(ctx context.Context, userID string) ([]planner.Topic, error) {
	var row planRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, user_id, payload FROM study_topics WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(study_topics) > %w", err)
	}
	var topics []planner.Topic
	if err := json.Unmarshal(row.Payload, &topics); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return topics, nil
}

func (s *mysqlTopicStore) Put(ctx context.Context, userID string, topics []planner.Topic) error {
	payload, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO study_topics (id, user_id, payload)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), userID, payload); err != nil {
		return fmt.Errorf("db.ExecContext(study_topics) > %w", err)
	}
	return nil
}

func (s *mysqlTopicStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM study_topics WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("db.ExecContext(delete study_topics) > %w", err)
	}
	return nil
}
