package extraction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/studyloop/studyloop/internal/inference"
	"github.com/studyloop/studyloop/internal/planner"
)

// LLMExtractor asks an inference client for topics and degrades to the stub
// heuristics when the model fails or returns nothing usable.
type LLMExtractor struct {
	client    inference.Client
	fallback  *StubExtractor
	maxTopics int
	logger    *slog.Logger
}

func NewLLMExtractor(client inference.Client) *LLMExtractor {
	return &LLMExtractor{
		client:    client,
		fallback:  NewStubExtractor(),
		maxTopics: DefaultMaxTopics,
		logger:    slog.Default(),
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, documentText string) ([]planner.Topic, error) {
	response, err := e.client.ExtractTopics(ctx, inference.ExtractTopicsRequest{
		DocumentText: documentText,
		MaxTopics:    e.maxTopics,
	})
	if err != nil {
		e.logger.Warn("LLM topic extraction failed, using heuristic extraction", "error", err)
		return e.fallback.Extract(ctx, documentText)
	}

	topics := convertTopics(response.Topics, e.maxTopics)
	if len(topics) == 0 {
		e.logger.Warn("LLM returned no usable topics, using heuristic extraction")
		return e.fallback.Extract(ctx, documentText)
	}
	return topics, nil
}

// convertTopics maps model output onto planner topics, dropping unusable
// entries and clamping out-of-range metadata instead of failing.
func convertTopics(extracted []inference.ExtractedTopic, maxTopics int) []planner.Topic {
	var topics []planner.Topic
	seen := make(map[string]bool)
	for _, t := range extracted {
		name := strings.TrimSpace(t.Name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		if len(topics) >= maxTopics {
			break
		}
		seen[strings.ToLower(name)] = true

		topic := planner.Topic{
			Name:            name,
			DifficultyScore: t.DifficultyScore,
			EstimatedHours:  t.EstimatedHours,
			Category:        strings.TrimSpace(t.Category),
		}
		switch strings.ToLower(strings.TrimSpace(t.Priority)) {
		case "high":
			topic.Priority = planner.PriorityHigh
		case "low":
			topic.Priority = planner.PriorityLow
		default:
			topic.Priority = planner.PriorityMedium
		}
		if topic.DifficultyScore < 1 || topic.DifficultyScore > 10 {
			topic.DifficultyScore = 5
		}
		if topic.EstimatedHours <= 0 || topic.EstimatedHours > 100 {
			topic.EstimatedHours = 3
		}
		topics = append(topics, topic)
	}
	return topics
}
