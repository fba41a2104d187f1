// Package progress tracks session completion inside a plan. Sessions are
// identified by their (date, topic) pair, which stays stable across the
// scheduling pipeline.
package progress

import (
	"errors"
	"sort"

	"github.com/studyloop/studyloop/internal/planner"
)

// ErrSessionNotFound is returned when no session matches the (date, topic)
// key.
var ErrSessionNotFound = errors.New("session not found")

// MarkSession sets the completion state of the session identified by date and
// topic. The plan is updated in place.
func MarkSession(plan *planner.Plan, date planner.Date, topic string, completed bool) error {
	for i := range plan.Sessions {
		session := &plan.Sessions[i]
		if session.Date.Equal(date.Time) && session.Topic == topic {
			session.Completed = completed
			if completed {
				session.Status = planner.SessionStatusCompleted
			} else {
				session.Status = planner.SessionStatusScheduled
			}
			return nil
		}
	}
	return ErrSessionNotFound
}

// DayProgress is the completion rollup for one calendar day.
type DayProgress struct {
	Date             planner.Date `json:"date"`
	TotalSessions    int          `json:"total_sessions"`
	Completed        int          `json:"completed"`
	TotalMinutes     int          `json:"total_minutes"`
	CompletedMinutes int          `json:"completed_minutes"`
}

// Summary is the completion rollup for a whole plan.
type Summary struct {
	TotalSessions   int           `json:"total_sessions"`
	Completed       int           `json:"completed"`
	CompletionRatio float64       `json:"completion_ratio"`
	Days            []DayProgress `json:"days"`
}

// Summarize rolls up completion per day and over the whole plan. Days appear
// in chronological order.
func Summarize(plan planner.Plan) Summary {
	byDay := make(map[string]*DayProgress)
	var keys []string
	summary := Summary{}

	for _, session := range plan.Sessions {
		key := session.Date.String()
		day, ok := byDay[key]
		if !ok {
			day = &DayProgress{Date: session.Date}
			byDay[key] = day
			keys = append(keys, key)
		}

		day.TotalSessions++
		day.TotalMinutes += session.DurationMinutes
		summary.TotalSessions++
		if session.Completed {
			day.Completed++
			day.CompletedMinutes += session.DurationMinutes
			summary.Completed++
		}
	}

	if summary.TotalSessions > 0 {
		summary.CompletionRatio = float64(summary.Completed) / float64(summary.TotalSessions)
	}

	sort.Strings(keys)
	for _, key := range keys {
		summary.Days = append(summary.Days, *byDay[key])
	}
	return summary
}
