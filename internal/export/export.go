// Package export renders study plans to markdown and PDF.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/studyloop/studyloop/internal/planner"
)

// PlanMarkdown renders a plan as a markdown schedule, one section per day.
func PlanMarkdown(plan planner.Plan) string {
	var b strings.Builder

	b.WriteString("# Study Plan\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", plan.GeneratedAt.String())
	fmt.Fprintf(&b, "- Horizon: %d days\n", plan.HorizonDays)
	fmt.Fprintf(&b, "- Urgency: %s (x%.1f)\n", plan.UrgencyLevel, plan.UrgencyMultiplier)
	if plan.Deadline != "" {
		fmt.Fprintf(&b, "- Deadline: %s\n", plan.Deadline)
	}
	fmt.Fprintf(&b, "- Total study time: %d minutes over %d sessions\n", plan.TotalMinutes(), len(plan.Sessions))

	currentDay := ""
	for _, session := range plan.Sessions {
		day := session.Date.String()
		if day != currentDay {
			fmt.Fprintf(&b, "\n## %s\n\n", day)
			currentDay = day
		}

		marker := " "
		if session.Completed {
			marker = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%s** (%d min, %s): %s",
			marker, session.Topic, session.DurationMinutes, session.SessionType, session.Focus)
		if session.SpacedRepetition {
			fmt.Fprintf(&b, " _(review after %d days)_", session.RepetitionInterval)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// WriteMarkdown writes the rendered plan to a .md file.
func WriteMarkdown(plan planner.Plan, path string) error {
	if !strings.HasSuffix(path, ".md") {
		return fmt.Errorf("output file must have .md extension: %s", path)
	}
	if err := os.WriteFile(path, []byte(PlanMarkdown(plan)), 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// WritePDF renders the plan to markdown and converts it to a PDF next to the
// given path. It returns the absolute path of the written PDF.
func WritePDF(plan planner.Plan, pdfPath string) (string, error) {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return "", fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	content := []byte(PlanMarkdown(plan))
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
