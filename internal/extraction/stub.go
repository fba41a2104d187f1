package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/studyloop/studyloop/internal/planner"
)

// headingPattern matches syllabus-style headings such as "Chapter 3:
// Thermodynamics", "Unit 2 - Algebra" or "Week 1: Cells".
var headingPattern = regexp.MustCompile(`(?i)^(?:chapter|unit|week|module|topic|section|lesson)\s*\d*\s*[:\-–]\s*(.+)$`)

// bulletPattern matches list items: "- Algebra", "* Geometry", "1. Calculus".
var bulletPattern = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+(.+)$`)

// StubExtractor derives topics from document structure alone. It is fully
// deterministic and never fails, which makes it both the demo-mode extractor
// and the terminal fallback behind the LLM extractor.
type StubExtractor struct {
	MaxTopics int
}

func NewStubExtractor() *StubExtractor {
	return &StubExtractor{MaxTopics: DefaultMaxTopics}
}

func (e *StubExtractor) Extract(_ context.Context, documentText string) ([]planner.Topic, error) {
	maxTopics := e.MaxTopics
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}

	var topics []planner.Topic
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] || len(topics) >= maxTopics {
			return
		}
		seen[strings.ToLower(name)] = true
		topics = append(topics, planner.Topic{
			Name:            name,
			DifficultyScore: 5,
			Priority:        planner.PriorityMedium,
			EstimatedHours:  3,
		})
	}

	for _, line := range strings.Split(documentText, "\n") {
		line = strings.TrimSpace(line)
		if match := headingPattern.FindStringSubmatch(line); match != nil {
			add(match[1])
			continue
		}
		if match := bulletPattern.FindStringSubmatch(line); match != nil {
			// Only short list items look like topic names; long ones are
			// prose.
			if candidate := match[1]; len(candidate) <= 60 {
				add(candidate)
			}
		}
	}

	if len(topics) == 0 {
		topics = append(topics, planner.Topic{
			Name:            planner.FallbackTopicName,
			DifficultyScore: 5,
			Priority:        planner.PriorityMedium,
			EstimatedHours:  3,
		})
	}
	return topics, nil
}
