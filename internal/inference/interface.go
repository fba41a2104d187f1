package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	ExtractTopics(ctx context.Context, params ExtractTopicsRequest) (ExtractTopicsResponse, error)
	GenerateQuiz(ctx context.Context, params GenerateQuizRequest) (GenerateQuizResponse, error)
}

// ExtractTopicsRequest holds the raw document text to mine topics from.
type ExtractTopicsRequest struct {
	DocumentText string `json:"document_text"`
	MaxTopics    int    `json:"max_topics,omitempty"`
}

// ExtractedTopic is one topic candidate returned by the model. The fields
// mirror the planner's topic metadata; missing values are defaulted
// downstream, never rejected.
type ExtractedTopic struct {
	Name            string  `json:"name"`
	DifficultyScore int     `json:"difficulty_score,omitempty"`
	Priority        string  `json:"priority,omitempty"`
	EstimatedHours  float64 `json:"estimated_hours,omitempty"`
	Category        string  `json:"category,omitempty"`
}

type ExtractTopicsResponse struct {
	Topics []ExtractedTopic `json:"topics"`
}

// GenerateQuizRequest asks for quiz questions covering the given topics.
type GenerateQuizRequest struct {
	Topics       []string `json:"topics"`
	NumQuestions int      `json:"num_questions,omitempty"`
}

// QuizQuestion is a single multiple-choice question. CorrectIndex points
// into Options.
type QuizQuestion struct {
	Topic        string   `json:"topic"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

type GenerateQuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

const (
	DefaultMaxRetryAttempts = 3
)
