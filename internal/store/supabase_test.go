package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/studyloop/internal/planner"
)

func TestSupabaseStore_Get(t *testing.T) {
	plan := planner.Plan{HorizonDays: 7, UrgencyLevel: "normal", Method: "rule_based"}
	payload, err := json.Marshal(plan)
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		handler  http.HandlerFunc
		wantPlan planner.Plan
		wantErr  string
		notFound bool
	}{
		{
			name: "found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/rest/v1/study_plans", r.URL.Path)
				assert.Equal(t, "eq.alice", r.URL.Query().Get("user_id"))
				assert.Equal(t, "secret", r.Header.Get("apikey"))
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]supabaseRow{{UserID: "alice", Payload: payload}})
			},
			wantPlan: plan,
		},
		{
			name: "no rows means not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("[]"))
			},
			notFound: true,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "permission denied", http.StatusForbidden)
			},
			wantErr: "status code: 403",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			s := NewSupabaseStore(SupabaseConfig{URL: server.URL, Key: "secret"})
			got, err := s.Get(context.Background(), "alice")
			if tc.notFound {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPlan, got)
		})
	}
}

func TestSupabaseStore_Put(t *testing.T) {
	plan := planner.Plan{HorizonDays: 14, Method: "rule_based"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/study_plans", r.URL.Path)
		assert.Equal(t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
		assert.Equal(t, "user_id", r.URL.Query().Get("on_conflict"))

		var rows []supabaseRow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "alice", rows[0].UserID)
		assert.NotEmpty(t, rows[0].ID)

		var got planner.Plan
		require.NoError(t, json.Unmarshal(rows[0].Payload, &got))
		assert.Equal(t, plan, got)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := NewSupabaseStore(SupabaseConfig{URL: server.URL, Key: "secret"})
	require.NoError(t, s.Put(context.Background(), "alice", plan))
}

func TestSupabaseStore_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.alice", r.URL.Query().Get("user_id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	s := NewSupabaseStore(SupabaseConfig{URL: server.URL, Key: "secret"})
	require.NoError(t, s.Delete(context.Background(), "alice"))
}

func TestSupabaseStore_CustomTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/my_plans", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	s := NewSupabaseStore(SupabaseConfig{URL: server.URL, Key: "secret", Table: "my_plans"})
	_, err := s.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupabaseTopicStore(t *testing.T) {
	topics := []planner.Topic{{Name: "Algebra", DifficultyScore: 5, Priority: planner.PriorityMedium, EstimatedHours: 3}}
	payload, err := json.Marshal(topics)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/study_topics", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]supabaseRow{{UserID: "alice", Payload: payload}})
		case http.MethodPost:
			assert.Equal(t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
			w.WriteHeader(http.StatusCreated)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	s := NewSupabaseStore(SupabaseConfig{URL: server.URL, Key: "secret"}).Topics()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "alice", topics))
	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, topics, got)
	require.NoError(t, s.Delete(ctx, "alice"))
}
