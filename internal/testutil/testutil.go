// Package testutil provides shared test helpers for creating config files and
// topic fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/studyloop/studyloop/internal/planner"
)

// SetupTestConfig creates a minimal config file for testing. Returns the path
// to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := `server:
  address: ":8080"
  mode: test
planner:
  default_horizon_days: 14
  default_hours_per_day: 2.0
store:
  backend: memory
`

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key
// for tests that exercise the LLM-backed paths.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// TopicOption configures optional fields when creating a topic fixture.
type TopicOption func(*planner.Topic)

// WithDifficulty sets the fixture's difficulty score.
func WithDifficulty(score int) TopicOption {
	return func(topic *planner.Topic) {
		topic.DifficultyScore = score
	}
}

// WithPriority sets the fixture's priority.
func WithPriority(priority planner.Priority) TopicOption {
	return func(topic *planner.Topic) {
		topic.Priority = priority
	}
}

// WithHours sets the fixture's estimated hours.
func WithHours(hours float64) TopicOption {
	return func(topic *planner.Topic) {
		topic.EstimatedHours = hours
	}
}

// NewTopic creates a topic fixture with mid-range defaults.
func NewTopic(name string, opts ...TopicOption) planner.Topic {
	topic := planner.Topic{
		Name:            name,
		DifficultyScore: 5,
		Priority:        planner.PriorityMedium,
		EstimatedHours:  3,
	}
	for _, opt := range opts {
		opt(&topic)
	}
	return topic
}

// WriteTopicsFile writes a topics YAML file usable as CLI input. Returns its
// path.
func WriteTopicsFile(t *testing.T, tmpDir string, topics []planner.Topic) string {
	t.Helper()

	content, err := yaml.Marshal(map[string][]planner.Topic{"topics": topics})
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "topics.yml")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}
