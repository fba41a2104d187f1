// Package statistics aggregates a plan and its completion state into the
// dashboard view.
package statistics

import (
	"sort"

	"github.com/studyloop/studyloop/internal/gamification"
	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/progress"
)

// TopicStatistics holds per-topic completion counts.
type TopicStatistics struct {
	Topic            string  `json:"topic"`
	TotalSessions    int     `json:"total_sessions"`
	Completed        int     `json:"completed"`
	TotalMinutes     int     `json:"total_minutes"`
	CompletedMinutes int     `json:"completed_minutes"`
	CompletionRatio  float64 `json:"completion_ratio"`
}

// Dashboard is the aggregate view served to the frontend: plan shape,
// completion rollups and gamification scores in one payload.
type Dashboard struct {
	HorizonDays       int                    `json:"horizon_days"`
	UrgencyLevel      string                 `json:"urgency_level"`
	UrgencyMultiplier float64                `json:"urgency_multiplier"`
	Deadline          string                 `json:"deadline,omitempty"`
	PlannedMinutes    int                    `json:"planned_minutes"`
	CompletedMinutes  int                    `json:"completed_minutes"`
	Progress          progress.Summary       `json:"progress"`
	Topics            []TopicStatistics      `json:"topics"`
	Gamification      gamification.Stats     `json:"gamification"`
}

// BuildDashboard aggregates the plan as of today.
func BuildDashboard(plan planner.Plan, today planner.Date) Dashboard {
	dashboard := Dashboard{
		HorizonDays:       plan.HorizonDays,
		UrgencyLevel:      string(plan.UrgencyLevel),
		UrgencyMultiplier: plan.UrgencyMultiplier,
		Deadline:          plan.Deadline,
		Progress:          progress.Summarize(plan),
		Topics:            topicStatistics(plan),
		Gamification:      gamification.Summarize(plan, today),
	}
	for _, session := range plan.Sessions {
		dashboard.PlannedMinutes += session.DurationMinutes
		if session.Completed {
			dashboard.CompletedMinutes += session.DurationMinutes
		}
	}
	return dashboard
}

func topicStatistics(plan planner.Plan) []TopicStatistics {
	byTopic := make(map[string]*TopicStatistics)
	var names []string

	for _, session := range plan.Sessions {
		stats, ok := byTopic[session.Topic]
		if !ok {
			stats = &TopicStatistics{Topic: session.Topic}
			byTopic[session.Topic] = stats
			names = append(names, session.Topic)
		}
		stats.TotalSessions++
		stats.TotalMinutes += session.DurationMinutes
		if session.Completed {
			stats.Completed++
			stats.CompletedMinutes += session.DurationMinutes
		}
	}

	sort.Strings(names)
	result := make([]TopicStatistics, 0, len(names))
	for _, name := range names {
		stats := byTopic[name]
		if stats.TotalSessions > 0 {
			stats.CompletionRatio = float64(stats.Completed) / float64(stats.TotalSessions)
		}
		result = append(result, *stats)
	}
	return result
}
