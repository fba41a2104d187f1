package store

import (
	"context"
	"sync"

	"github.com/studyloop/studyloop/internal/planner"
)

// MemoryStore keeps plans and topics in process memory. Contents are lost on
// restart, which is the intended lifecycle for demo deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	plans  map[string]planner.Plan
	topics map[string][]planner.Topic
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans:  make(map[string]planner.Plan),
		topics: make(map[string][]planner.Topic),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (planner.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[userID]
	if !ok {
		return planner.Plan{}, ErrNotFound
	}
	return plan, nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, plan planner.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans[userID] = plan
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plans, userID)
	return nil
}

// Topics returns a TopicStore view over the same in-memory state.
func (s *MemoryStore) Topics() TopicStore {
	return (*memoryTopicStore)(s)
}

type memoryTopicStore MemoryStore

func (s *memoryTopicStore) Get(_ context.Context, userID string) ([]planner.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics, ok := s.topics[userID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]planner.Topic, len(topics))
	copy(result, topics)
	return result, nil
}

func (s *memoryTopicStore) Put(_ context.Context, userID string, topics []planner.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]planner.Topic, len(topics))
	copy(stored, topics)
	s.topics[userID] = stored
	return nil
}

func (s *memoryTopicStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.topics, userID)
	return nil
}
