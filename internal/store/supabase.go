package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop/internal/planner"
)

// SupabaseConfig holds connection settings for the Supabase REST API.
type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

// SupabaseStore persists plans through Supabase's PostgREST endpoint. One row
// per user; writes upsert on the user_id unique constraint.
type SupabaseStore struct {
	client *resty.Client
	table  string
}

type supabaseRow struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewSupabaseStore(config SupabaseConfig) *SupabaseStore {
	client := resty.New().
		SetBaseURL(config.URL+"/rest/v1").
		SetHeader("apikey", config.Key).
		SetHeader("Authorization", "Bearer "+config.Key)
	table := config.Table
	if table == "" {
		table = "study_plans"
	}
	return &SupabaseStore{client: client, table: table}
}

func (s *SupabaseStore) Get(ctx context.Context, userID string) (planner.Plan, error) {
	var plan planner.Plan

	var rows []supabaseRow
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("select", "payload").
		SetResult(&rows).
		Get("/" + s.table)
	if err != nil {
		return plan, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return plan, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if len(rows) == 0 {
		return plan, ErrNotFound
	}
	if err := json.Unmarshal(rows[0].Payload, &plan); err != nil {
		return plan, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return plan, nil
}

func (s *SupabaseStore) Put(ctx context.Context, userID string, plan planner.Plan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	row := supabaseRow{
		ID:        uuid.NewString(),
		UserID:    userID,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates").
		SetQueryParam("on_conflict", "user_id").
		SetBody([]supabaseRow{row}).
		Post("/" + s.table)
	if err != nil {
		return fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusCreated && res.StatusCode() != http.StatusOK {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

// Topics returns a TopicStore backed by the study_topics table through the
// same PostgREST client.
func (s *SupabaseStore) Topics() TopicStore {
	return &supabaseTopicStore{client: s.client, table: "study_topics"}
}

type supabaseTopicStore struct {
	client *resty.Client
	table  string
}

func (s *supabaseTopicStore) Get(ctx context.Context, userID string) ([]planner.Topic, error) {
	var rows []supabaseRow
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		SetQueryParam("select", "payload").
		SetResult(&rows).
		Get("/" + s.table)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	var topics []planner.Topic
	if err := json.Unmarshal(rows[0].Payload, &topics); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return topics, nil
}

func (s *supabaseTopicStore) Put(ctx context.Context, userID string, topics []planner.Topic) error {
	payload, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	row := supabaseRow{
		ID:        uuid.NewString(),
		UserID:    userID,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates").
		SetQueryParam("on_conflict", "user_id").
		SetBody([]supabaseRow{row}).
		Post("/" + s.table)
	if err != nil {
		return fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusCreated && res.StatusCode() != http.StatusOK {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

func (s *supabaseTopicStore) Delete(ctx context.Context, userID string) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		Delete("/" + s.table)
	if err != nil {
		return fmt.Errorf("client.R.Delete > %w", err)
	}
	if res.StatusCode() != http.StatusNoContent && res.StatusCode() != http.StatusOK {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}

func (s *SupabaseStore) Delete(ctx context.Context, userID string) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", "eq."+userID).
		Delete("/" + s.table)
	if err != nil {
		return fmt.Errorf("client.R.Delete > %w", err)
	}
	if res.StatusCode() != http.StatusNoContent && res.StatusCode() != http.StatusOK {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}
