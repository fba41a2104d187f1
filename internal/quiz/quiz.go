// Package quiz generates review questions for study topics. Generation is
// best-effort: when no model is available or the model fails, deterministic
// template questions are produced instead, so callers never see an error.
package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyloop/studyloop/internal/inference"
	"github.com/studyloop/studyloop/internal/planner"
)

// DefaultQuestionsPerTopic is used when a request does not say how many
// questions it wants.
const DefaultQuestionsPerTopic = 3

// Question is one multiple-choice question. CorrectIndex points into Options.
type Question struct {
	Topic        string   `json:"topic"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Quiz is a generated set of questions with the method that produced them.
type Quiz struct {
	Questions []Question `json:"questions"`
	Method    string     `json:"method"`
}

const (
	methodLLM      = "llm"
	methodTemplate = "template"
)

// Generator produces quizzes from topics. A nil client skips the model and
// goes straight to templates.
type Generator struct {
	client inference.Client
	logger *slog.Logger
}

func NewGenerator(client inference.Client) *Generator {
	return &Generator{
		client: client,
		logger: slog.Default(),
	}
}

// Generate builds a quiz covering the given topics. It never fails; any model
// error degrades to template questions.
func (g *Generator) Generate(ctx context.Context, topics []planner.Topic, numQuestions int) Quiz {
	if len(topics) == 0 {
		topics = []planner.Topic{{Name: planner.FallbackTopicName, DifficultyScore: 5}}
	}
	if numQuestions <= 0 {
		numQuestions = DefaultQuestionsPerTopic * len(topics)
	}

	if g.client != nil {
		if quiz, ok := g.generateLLM(ctx, topics, numQuestions); ok {
			return quiz
		}
	}
	return g.generateTemplate(topics, numQuestions)
}

func (g *Generator) generateLLM(ctx context.Context, topics []planner.Topic, numQuestions int) (Quiz, bool) {
	names := make([]string, len(topics))
	for i, topic := range topics {
		names[i] = topic.Name
	}

	response, err := g.client.GenerateQuiz(ctx, inference.GenerateQuizRequest{
		Topics:       names,
		NumQuestions: numQuestions,
	})
	if err != nil {
		g.logger.Warn("LLM quiz generation failed, using template questions", "error", err)
		return Quiz{}, false
	}

	var questions []Question
	for _, q := range response.Questions {
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			continue
		}
		questions = append(questions, Question{
			Topic:        q.Topic,
			Prompt:       q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	if len(questions) == 0 {
		g.logger.Warn("LLM returned no usable questions, using template questions")
		return Quiz{}, false
	}
	return Quiz{Questions: questions, Method: methodLLM}, true
}

// templatePrompts rotate per question index so each topic gets a definition,
// an application and a review question before repeating.
var templatePrompts = []string{
	"Which statement best describes %s?",
	"Which of the following is an application of %s?",
	"Which point is most important to review for %s?",
}

func (g *Generator) generateTemplate(topics []planner.Topic, numQuestions int) Quiz {
	questions := make([]Question, 0, numQuestions)
	for i := 0; len(questions) < numQuestions; i++ {
		topic := topics[i%len(topics)]
		round := i / len(topics)
		prompt := templatePrompts[round%len(templatePrompts)]

		questions = append(questions, Question{
			Topic:        topic.Name,
			Prompt:       fmt.Sprintf(prompt, topic.Name),
			Options:      templateOptions(topic),
			CorrectIndex: 0,
			Explanation:  fmt.Sprintf("Check your notes on %s.", topic.Name),
		})
	}
	return Quiz{Questions: questions, Method: methodTemplate}
}

// templateOptions scales the number of distractors with topic difficulty.
func templateOptions(topic planner.Topic) []string {
	count := 3
	switch {
	case topic.DifficultyScore >= 7:
		count = 5
	case topic.DifficultyScore >= 4:
		count = 4
	}

	options := make([]string, 0, count)
	options = append(options, fmt.Sprintf("The summary of %s from your study notes", topic.Name))
	for i := 1; i < count; i++ {
		options = append(options, fmt.Sprintf("Distractor %d for %s", i, topic.Name))
	}
	return options
}
