package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/statistics"
)

func newReportCommand() *cobra.Command {
	var planPath string

	command := &cobra.Command{
		Use:   "report",
		Short: "Show progress and gamification statistics for a saved plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := os.ReadFile(planPath)
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", planPath, err)
			}

			var plan planner.Plan
			if err := json.Unmarshal(contents, &plan); err != nil {
				return fmt.Errorf("json.Unmarshal > %w", err)
			}

			dashboard := statistics.BuildDashboard(plan, planner.NewDate(time.Now()))

			heading := color.New(color.FgCyan, color.Bold)
			heading.Fprintln(cmd.OutOrStdout(), "Progress report")
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions: %d/%d completed (%.0f%%)\n",
				dashboard.Progress.Completed, dashboard.Progress.TotalSessions,
				dashboard.Progress.CompletionRatio*100)
			fmt.Fprintf(cmd.OutOrStdout(), "Minutes: %d/%d completed\n",
				dashboard.CompletedMinutes, dashboard.PlannedMinutes)
			fmt.Fprintf(cmd.OutOrStdout(), "XP: %d (level %d, %d to next level)\n",
				dashboard.Gamification.TotalXP, dashboard.Gamification.Level,
				dashboard.Gamification.XPToNextLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d days\n", dashboard.Gamification.StreakDays)
			if len(dashboard.Gamification.Achievements) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Achievements: %v\n", dashboard.Gamification.Achievements)
			}

			heading.Fprintln(cmd.OutOrStdout(), "\nBy topic")
			for _, topic := range dashboard.Topics {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-25s %d/%d sessions, %d/%d minutes\n",
					topic.Topic, topic.Completed, topic.TotalSessions,
					topic.CompletedMinutes, topic.TotalMinutes)
			}
			return nil
		},
	}

	command.Flags().StringVar(&planPath, "plan", "plan.json", "Path to a plan JSON file written by 'studyloop plan --json'")

	return command
}
