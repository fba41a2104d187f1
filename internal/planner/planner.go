package planner

import (
	"log/slog"
	"time"
)

// FallbackTopicName is the placeholder topic used when a caller supplies no
// topics at all. The product guarantee is that every request yields a plan.
const FallbackTopicName = "General Review"

const methodRuleBased = "rule_based"

// Planner assembles study plans. The clock is injectable so the pipeline is
// fully deterministic under test.
type Planner struct {
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Planner)

// WithClock overrides the time source used to anchor day zero of a plan.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

func New(opts ...Option) *Planner {
	p := &Planner{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateSchedule runs the full pipeline: urgency calculation, topic
// prioritization, session distribution, spaced-repetition spacing and
// cognitive-load balancing, in exactly that order. Spacing must run before
// balancing because balancing groups sessions by the dates spacing assigns.
//
// Only a structurally invalid horizon is surfaced as an error. An empty
// topic set is replaced with a single fallback topic, and any internal stage
// failure degrades to a minimal baseline plan rather than an error.
func (p *Planner) GenerateSchedule(topics []Topic, horizonDays int, hoursPerDay float64, deadline string) (plan *Plan, err error) {
	if horizonDays <= 0 || horizonDays > MaxHorizonDays {
		return nil, ErrInvalidHorizon
	}

	today := NewDate(p.now())

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("schedule generation failed, falling back to baseline plan", "panic", r)
			plan, err = p.fallbackPlan(today, horizonDays, hoursPerDay), nil
		}
	}()

	if len(topics) == 0 {
		topics = []Topic{{Name: FallbackTopicName}}
	}
	normalized := make([]Topic, len(topics))
	for i, t := range topics {
		normalized[i] = t.normalized()
	}

	urgency := CalculateUrgency(deadline, today)
	horizon := urgency.EffectiveHorizon(horizonDays)
	effectiveHours := urgency.EffectiveHours(hoursPerDay)

	ordered := PrioritizeTopics(normalized, urgency)
	sessions, err := DistributeSessions(ordered, horizon, urgency, today)
	if err != nil {
		p.logger.Error("session distribution failed, falling back to baseline plan", "error", err)
		return p.fallbackPlan(today, horizonDays, hoursPerDay), nil
	}
	sessions = ApplySpacing(sessions)
	sessions = BalanceLoad(sessions, effectiveHours)

	return &Plan{
		Sessions:          sessions,
		Topics:            ordered,
		HorizonDays:       horizon,
		HoursPerDay:       hoursPerDay,
		EffectiveHours:    effectiveHours,
		UrgencyLevel:      urgency.Level,
		UrgencyMultiplier: urgency.Multiplier,
		Deadline:          deadline,
		GeneratedAt:       today,
		Method:            methodRuleBased,
		SpacedRepetition:  true,
		LoadBalanced:      true,
	}, nil
}

// fallbackPlan is the last-resort guarantee that a user always receives some
// schedule: a single general-review session today.
func (p *Planner) fallbackPlan(today Date, horizonDays int, hoursPerDay float64) *Plan {
	topic := Topic{Name: FallbackTopicName}.normalized()
	return &Plan{
		Sessions: []Session{{
			Date:            today,
			Topic:           topic.Name,
			DurationMinutes: 60,
			Focus:           focusReview,
			SessionType:     SessionTypeReview,
			Priority:        topic.Priority,
			Difficulty:      topic.DifficultyScore,
			CognitiveLoad:   CognitiveLoadMedium,
			Status:          SessionStatusScheduled,
		}},
		Topics:            []Topic{topic},
		HorizonDays:       horizonDays,
		HoursPerDay:       hoursPerDay,
		EffectiveHours:    hoursPerDay,
		UrgencyLevel:      UrgencyNormal,
		UrgencyMultiplier: 1.0,
		GeneratedAt:       today,
		Method:            "fallback",
	}
}
