package planner

import "log/slog"

type UrgencyLevel string

const (
	UrgencyOverdue  UrgencyLevel = "overdue"
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyModerate UrgencyLevel = "moderate"
	UrgencyNormal   UrgencyLevel = "normal"
)

// Urgency classifies how close a deadline is and how aggressively the
// schedule should scale study time in response.
type Urgency struct {
	Level         UrgencyLevel
	Multiplier    float64
	DaysRemaining int
	HasDeadline   bool
}

// CalculateUrgency derives the urgency tier and multiplier from an optional
// ISO-8601 deadline. An absent or unparsable deadline is non-fatal and yields
// the normal tier.
func CalculateUrgency(deadline string, today Date) Urgency {
	if deadline == "" {
		return Urgency{Level: UrgencyNormal, Multiplier: 1.0}
	}

	deadlineDate, err := ParseDate(deadline)
	if err != nil {
		slog.Warn("ignoring unparsable deadline", "deadline", deadline, "error", err)
		return Urgency{Level: UrgencyNormal, Multiplier: 1.0}
	}

	daysRemaining := today.DaysUntil(deadlineDate)
	urgency := Urgency{DaysRemaining: daysRemaining, HasDeadline: true}

	switch {
	case daysRemaining <= 0:
		urgency.Level, urgency.Multiplier = UrgencyOverdue, 3.0
	case daysRemaining <= 3:
		urgency.Level, urgency.Multiplier = UrgencyCritical, 2.5
	case daysRemaining <= 7:
		urgency.Level, urgency.Multiplier = UrgencyUrgent, 2.0
	case daysRemaining <= 14:
		urgency.Level, urgency.Multiplier = UrgencyModerate, 1.5
	default:
		urgency.Level, urgency.Multiplier = UrgencyNormal, 1.0
	}
	return urgency
}

// BaseSessionMinutes selects the base session length for the distributor.
// Tighter deadlines get longer blocks.
func (u Urgency) BaseSessionMinutes() int {
	switch {
	case u.Multiplier > 2.0:
		return 90
	case u.Multiplier > 1.5:
		return 60
	default:
		return 45
	}
}

// EffectiveHorizon clamps the horizon to the deadline when the deadline
// falls inside it.
func (u Urgency) EffectiveHorizon(horizonDays int) int {
	if u.HasDeadline && u.DaysRemaining > 0 && u.DaysRemaining < horizonDays {
		return u.DaysRemaining
	}
	return horizonDays
}

// EffectiveHours scales the requested daily-hour budget by the urgency
// multiplier.
func (u Urgency) EffectiveHours(requestedHoursPerDay float64) float64 {
	return requestedHoursPerDay * u.Multiplier
}

// frontLoadsHardTopics reports whether the prioritizer should schedule the
// hardest topics first for this tier.
func (u Urgency) frontLoadsHardTopics() bool {
	return u.Level == UrgencyCritical || u.Level == UrgencyUrgent
}
