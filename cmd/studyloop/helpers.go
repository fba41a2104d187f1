package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/extraction"
	"github.com/studyloop/studyloop/internal/inference"
	"github.com/studyloop/studyloop/internal/inference/openai"
	"github.com/studyloop/studyloop/internal/planner"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// topicsFile is the YAML input format of the plan and quiz commands.
type topicsFile struct {
	Topics []planner.Topic `yaml:"topics"`
}

func readTopicsFile(path string) ([]planner.Topic, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var parsed topicsFile
	if err := yaml.Unmarshal(contents, &parsed); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	if len(parsed.Topics) == 0 {
		return nil, fmt.Errorf("no topics found in %s", path)
	}
	return parsed.Topics, nil
}

func writeTopicsFile(path string, topics []planner.Topic) error {
	contents, err := yaml.Marshal(topicsFile{Topics: topics})
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// newExtractor picks the LLM extractor when an API key is configured and the
// deterministic stub otherwise.
func newExtractor(cfg *config.Config) extraction.Extractor {
	if cfg.OpenAI.APIKey == "" {
		return extraction.NewStubExtractor()
	}
	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
	return extraction.NewLLMExtractor(client)
}

func printPlan(w io.Writer, plan *planner.Plan) {
	heading := color.New(color.FgCyan, color.Bold)
	day := color.New(color.FgYellow, color.Bold)

	heading.Fprintf(w, "Study plan: %d sessions, %d minutes over %d days\n",
		len(plan.Sessions), plan.TotalMinutes(), plan.HorizonDays)
	fmt.Fprintf(w, "Urgency: %s (x%.1f)", plan.UrgencyLevel, plan.UrgencyMultiplier)
	if plan.Deadline != "" {
		fmt.Fprintf(w, ", deadline %s", plan.Deadline)
	}
	fmt.Fprintln(w)

	currentDay := ""
	for _, session := range plan.Sessions {
		if session.Date.String() != currentDay {
			currentDay = session.Date.String()
			day.Fprintf(w, "\n%s\n", currentDay)
		}
		marker := ""
		if session.SpacedRepetition {
			marker = fmt.Sprintf(" [review +%dd]", session.RepetitionInterval)
		}
		fmt.Fprintf(w, "  %3d min  %-25s %s%s\n",
			session.DurationMinutes, session.Topic, session.Focus, marker)
	}
}

func printTopics(w io.Writer, topics []planner.Topic) {
	name := color.New(color.FgGreen)
	for _, topic := range topics {
		name.Fprintf(w, "%s", topic.Name)
		fmt.Fprintf(w, " (difficulty %d, priority %s, %.1fh)\n",
			topic.DifficultyScore, topic.Priority, topic.EstimatedHours)
	}
}
