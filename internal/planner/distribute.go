package planner

import (
	"errors"
	"math"
)

// ErrInvalidHorizon is returned when a caller asks for a schedule over a
// non-positive or unreasonably large number of days.
var ErrInvalidHorizon = errors.New("horizon must be between 1 and 120 days")

// MaxHorizonDays bounds the planning window. Anything past a school term is
// rejected rather than scheduled.
const MaxHorizonDays = 120

const (
	focusIntroduction = "Introduction and key concepts"
	focusDeepDive     = "Deep dive and application"
	focusReview       = "Review and practice problems"
)

// sessionsForTopic computes how many sessions a topic needs at the given
// base session length. Difficulty and priority adjustments are applied
// multiplicatively, each floored, and the result is capped at two sessions
// per horizon day.
func sessionsForTopic(topic Topic, baseMinutes, horizonDays int) int {
	needed := int(math.Round(topic.EstimatedHours * 60 / float64(baseMinutes)))
	if needed < 1 {
		needed = 1
	}

	count := needed
	switch {
	case topic.DifficultyScore >= 8:
		count = int(float64(count) * 1.5)
	case topic.DifficultyScore >= 6:
		count = int(float64(count) * 1.2)
	}
	switch topic.Priority {
	case PriorityHigh:
		count = int(float64(count) * 1.3)
	case PriorityLow:
		count = int(float64(count) * 0.8)
	}
	if count < 1 {
		count = 1
	}

	if limit := horizonDays * 2; count > limit {
		count = limit
	}
	return count
}

// DistributeSessions expands each topic into sessions and assigns them to
// the least-loaded day within the horizon. Topics must already be in
// prioritized order: earlier topics get first pick of low-occupancy days.
//
// Ties between equally loaded days are broken with sessionIndex mod the
// number of tied days, a deterministic pseudo-round-robin that spreads a
// topic's sessions instead of clustering them on the earliest tied day.
func DistributeSessions(topics []Topic, horizonDays int, urgency Urgency, today Date) ([]Session, error) {
	if horizonDays <= 0 || horizonDays > MaxHorizonDays {
		return nil, ErrInvalidHorizon
	}
	if len(topics) == 0 {
		return []Session{}, nil
	}

	baseMinutes := urgency.BaseSessionMinutes()
	buckets := make([][]Session, horizonDays)
	counts := make([]int, horizonDays)

	for _, topic := range topics {
		total := sessionsForTopic(topic, baseMinutes, horizonDays)
		for index := 0; index < total; index++ {
			day := pickDay(counts, index)
			buckets[day] = append(buckets[day], newSession(topic, today.AddDays(day), baseMinutes, index, total))
			counts[day]++
		}
	}

	sessions := make([]Session, 0, sum(counts))
	for _, bucket := range buckets {
		sessions = append(sessions, bucket...)
	}
	return sessions, nil
}

// pickDay returns the index of the least-loaded day, using the session index
// to rotate through tied days.
func pickDay(counts []int, sessionIndex int) int {
	minCount := counts[0]
	for _, c := range counts[1:] {
		if c < minCount {
			minCount = c
		}
	}

	var tied []int
	for day, c := range counts {
		if c == minCount {
			tied = append(tied, day)
		}
	}
	return tied[sessionIndex%len(tied)]
}

func newSession(topic Topic, date Date, baseMinutes, index, total int) Session {
	session := Session{
		Date:                 date,
		Topic:                topic.Name,
		DurationMinutes:      baseMinutes,
		Focus:                focusDeepDive,
		SessionType:          SessionTypeLearning,
		Priority:             topic.Priority,
		Difficulty:           topic.DifficultyScore,
		CognitiveLoad:        CognitiveLoadMedium,
		PrerequisitesCovered: index > 0,
		Status:               SessionStatusScheduled,
	}
	if topic.DifficultyScore >= highCognitiveLoadScore {
		session.CognitiveLoad = CognitiveLoadHigh
	}
	switch {
	case index == 0:
		session.Focus = focusIntroduction
	case index == total-1 && total > 1:
		session.Focus = focusReview
		session.SessionType = SessionTypeReview
	}
	return session
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
