package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/studyloop/studyloop/internal/inference"
	"github.com/studyloop/studyloop/internal/inference/openai"
	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/quiz"
)

// priorityFilter restricts quiz topics to one priority tier.
type priorityFilter string

func (f *priorityFilter) Set(val string) error {
	for _, filter := range allPriorityFilters {
		if val == string(filter) {
			*f = filter
			return nil
		}
	}
	return fmt.Errorf("invalid priority: %s", val)
}

func (f priorityFilter) String() string {
	return string(f)
}

func (f *priorityFilter) Type() string {
	return "priority"
}

const (
	priorityFilterAll    priorityFilter = "all"
	priorityFilterHigh   priorityFilter = "high"
	priorityFilterMedium priorityFilter = "medium"
	priorityFilterLow    priorityFilter = "low"
)

var (
	_                  pflag.Value = (*priorityFilter)(nil)
	allPriorityFilters             = []priorityFilter{priorityFilterAll, priorityFilterHigh, priorityFilterMedium, priorityFilterLow}
)

func filterTopics(topics []planner.Topic, filter priorityFilter) []planner.Topic {
	if filter == priorityFilterAll {
		return topics
	}
	var filtered []planner.Topic
	for _, topic := range topics {
		if topic.Priority == planner.Priority(filter) {
			filtered = append(filtered, topic)
		}
	}
	return filtered
}

func newQuizCommand() *cobra.Command {
	var (
		topicsPath   string
		numQuestions int
		showAnswers  bool
	)
	priority := priorityFilterAll

	command := &cobra.Command{
		Use:   "quiz",
		Short: "Generate review questions from a topics file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			topics, err := readTopicsFile(topicsPath)
			if err != nil {
				return err
			}
			topics = filterTopics(topics, priority)
			if len(topics) == 0 {
				return fmt.Errorf("no topics with priority %s", priority)
			}

			var client inference.Client
			if cfg.OpenAI.APIKey != "" {
				client = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
			}

			generated := quiz.NewGenerator(client).Generate(context.Background(), topics, numQuestions)

			heading := color.New(color.FgCyan, color.Bold)
			correct := color.New(color.FgGreen)
			heading.Fprintf(cmd.OutOrStdout(), "Quiz: %d questions (%s)\n", len(generated.Questions), generated.Method)

			for i, question := range generated.Questions {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d. [%s] %s\n", i+1, question.Topic, question.Prompt)
				for j, option := range question.Options {
					if showAnswers && j == question.CorrectIndex {
						correct.Fprintf(cmd.OutOrStdout(), "   %c) %s  <- correct\n", 'a'+j, option)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "   %c) %s\n", 'a'+j, option)
				}
			}
			return nil
		},
	}

	command.Flags().StringVar(&topicsPath, "topics", "topics.yml", "Path to the topics YAML file")
	command.Flags().IntVar(&numQuestions, "num", 0, "Number of questions (default: 3 per topic)")
	command.Flags().BoolVar(&showAnswers, "answers", false, "Mark the correct option in the output")
	command.Flags().Var(&priority, "priority", fmt.Sprintf("Only quiz topics with this priority. Possible values are %v", allPriorityFilters))

	return command
}
