// Package extraction turns raw document text into planner topics. The LLM
// extractor treats the model as a best-effort oracle: any failure falls
// through to deterministic heuristics so callers always get usable topics.
package extraction

import (
	"context"

	"github.com/studyloop/studyloop/internal/planner"
)

// Extractor mines study topics from document text.
type Extractor interface {
	Extract(ctx context.Context, documentText string) ([]planner.Topic, error)
}

// DefaultMaxTopics bounds how many topics a single document yields.
const DefaultMaxTopics = 10
