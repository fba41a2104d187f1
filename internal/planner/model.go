// Package planner builds day-partitioned study schedules from weighted topic
// lists. The pipeline runs urgency calculation, topic prioritization, session
// distribution, spaced-repetition spacing and cognitive-load balancing in
// sequence, entirely in memory.
package planner

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank returns the sort rank of a priority. Lower ranks schedule first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

type SessionType string

const (
	SessionTypeLearning SessionType = "learning"
	SessionTypeReview   SessionType = "review"
)

type CognitiveLoad string

const (
	CognitiveLoadMedium CognitiveLoad = "medium"
	CognitiveLoadHigh   CognitiveLoad = "high"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
)

const (
	defaultDifficultyScore = 5
	defaultEstimatedHours  = 3
	highCognitiveLoadScore = 7
)

// Topic is a unit of learning material extracted from a syllabus or supplied
// directly by a caller.
type Topic struct {
	Name            string   `json:"name" yaml:"name"`
	DifficultyScore int      `json:"difficulty_score" yaml:"difficulty_score,omitempty"`
	Priority        Priority `json:"priority" yaml:"priority,omitempty"`
	EstimatedHours  float64  `json:"estimated_hours" yaml:"estimated_hours,omitempty"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// normalized fills missing metadata with mid-range defaults so the scheduler
// never fails on sparse upstream input.
func (t Topic) normalized() Topic {
	if t.DifficultyScore < 1 || t.DifficultyScore > 10 {
		t.DifficultyScore = defaultDifficultyScore
	}
	switch t.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		t.Priority = PriorityMedium
	}
	if t.EstimatedHours <= 0 {
		t.EstimatedHours = defaultEstimatedHours
	}
	return t
}

// Date represents a calendar date in YYYY-MM-DD format for JSON and YAML
// serialization. Time-of-day is always zero.
type Date struct {
	time.Time
}

// NewDate creates a Date from a time, truncated to calendar-day granularity
// in UTC.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return NewDate(d.AddDate(0, 0, n))
}

// DaysUntil returns the number of whole calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a YYYY-MM-DD date, falling back to RFC3339 timestamps for
// callers that send full timestamps.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err == nil {
		return NewDate(t), nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD or RFC3339 format", s)
}

// Session is one scheduled study block. The (Date, Topic) pair is the
// identity key used by progress tracking and must stay stable across
// pipeline stages.
type Session struct {
	Date                 Date          `json:"date"`
	Topic                string        `json:"topic"`
	DurationMinutes      int           `json:"duration_minutes"`
	Focus                string        `json:"focus"`
	SessionType          SessionType   `json:"session_type"`
	Priority             Priority      `json:"priority"`
	Difficulty           int           `json:"difficulty"`
	CognitiveLoad        CognitiveLoad `json:"cognitive_load"`
	SpacedRepetition     bool          `json:"spaced_repetition"`
	RepetitionInterval   int           `json:"repetition_interval"`
	PrerequisitesCovered bool          `json:"prerequisites_covered"`
	Completed            bool          `json:"completed"`
	Status               SessionStatus `json:"status"`
}

// Plan is the pipeline output: the final session sequence, the prioritized
// topic list and scalar scheduling metadata.
type Plan struct {
	Sessions          []Session    `json:"sessions"`
	Topics            []Topic      `json:"topics"`
	HorizonDays       int          `json:"horizon_days"`
	HoursPerDay       float64      `json:"hours_per_day"`
	EffectiveHours    float64      `json:"effective_hours_per_day"`
	UrgencyLevel      UrgencyLevel `json:"urgency_level"`
	UrgencyMultiplier float64      `json:"urgency_multiplier"`
	Deadline          string       `json:"deadline,omitempty"`
	GeneratedAt       Date         `json:"generated_at"`
	Method            string       `json:"method"`
	SpacedRepetition  bool         `json:"spaced_repetition_applied"`
	LoadBalanced      bool         `json:"load_balancing_applied"`
}

// TotalMinutes returns the sum of all session durations.
func (p *Plan) TotalMinutes() int {
	total := 0
	for _, s := range p.Sessions {
		total += s.DurationMinutes
	}
	return total
}

// SessionsOn returns the sessions scheduled for a single date.
func (p *Plan) SessionsOn(date Date) []Session {
	var out []Session
	for _, s := range p.Sessions {
		if s.Date.Equal(date.Time) {
			out = append(out, s)
		}
	}
	return out
}
