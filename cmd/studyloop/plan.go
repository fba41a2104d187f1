package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyloop/studyloop/internal/export"
	"github.com/studyloop/studyloop/internal/planner"
)

func newPlanCommand() *cobra.Command {
	var (
		topicsPath   string
		horizonDays  int
		hoursPerDay  float64
		deadline     string
		jsonPath     string
		markdownPath string
		pdfPath      string
	)

	command := &cobra.Command{
		Use:   "plan",
		Short: "Generate a study schedule from a topics file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			topics, err := readTopicsFile(topicsPath)
			if err != nil {
				return err
			}

			if horizonDays == 0 {
				horizonDays = cfg.Planner.DefaultHorizonDays
			}
			if hoursPerDay == 0 {
				hoursPerDay = cfg.Planner.DefaultHoursPerDay
			}

			plan, err := planner.New().GenerateSchedule(topics, horizonDays, hoursPerDay, deadline)
			if err != nil {
				return fmt.Errorf("GenerateSchedule() > %w", err)
			}

			printPlan(cmd.OutOrStdout(), plan)

			if jsonPath != "" {
				contents, err := json.MarshalIndent(plan, "", "  ")
				if err != nil {
					return fmt.Errorf("json.MarshalIndent > %w", err)
				}
				if err := os.WriteFile(jsonPath, contents, 0644); err != nil {
					return fmt.Errorf("os.WriteFile(%s) > %w", jsonPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nPlan written to %s\n", jsonPath)
			}
			if markdownPath != "" {
				if err := export.WriteMarkdown(*plan, markdownPath); err != nil {
					return fmt.Errorf("export.WriteMarkdown() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Markdown written to %s\n", markdownPath)
			}
			if pdfPath != "" {
				written, err := export.WritePDF(*plan, pdfPath)
				if err != nil {
					return fmt.Errorf("export.WritePDF() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", written)
			}
			return nil
		},
	}

	command.Flags().StringVar(&topicsPath, "topics", "topics.yml", "Path to the topics YAML file")
	command.Flags().IntVar(&horizonDays, "horizon", 0, "Planning horizon in days (default from config)")
	command.Flags().Float64Var(&hoursPerDay, "hours", 0, "Available study hours per day (default from config)")
	command.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	command.Flags().StringVar(&jsonPath, "json", "", "Write the plan as JSON to this path")
	command.Flags().StringVar(&markdownPath, "markdown", "", "Write the plan as markdown to this path")
	command.Flags().StringVar(&pdfPath, "pdf", "", "Write the plan as PDF to this path")

	return command
}
