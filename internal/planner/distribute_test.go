package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToday() Date {
	return NewDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
}

func TestSessionsForTopic(t *testing.T) {
	tests := []struct {
		name        string
		topic       Topic
		baseMinutes int
		horizonDays int
		expected    int
	}{
		{
			name:        "plain topic maps hours to sessions",
			topic:       Topic{Name: "Geometry", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 3},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    4, // round(180/45) = 4, no adjustments
		},
		{
			name:        "difficulty eight scales by 1.5 and high priority by 1.3",
			topic:       Topic{Name: "Algebra", DifficultyScore: 8, Priority: PriorityHigh, EstimatedHours: 6},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    15, // round(360/45)=8, *1.5=12, *1.3=15.6 floored
		},
		{
			name:        "cap at two sessions per horizon day",
			topic:       Topic{Name: "Algebra", DifficultyScore: 8, Priority: PriorityHigh, EstimatedHours: 6},
			baseMinutes: 45,
			horizonDays: 5,
			expected:    10,
		},
		{
			name:        "difficulty six scales by 1.2",
			topic:       Topic{Name: "Trig", DifficultyScore: 6, Priority: PriorityMedium, EstimatedHours: 3},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    4, // round(180/45)=4, *1.2=4.8 floored
		},
		{
			name:        "low priority scales by 0.8",
			topic:       Topic{Name: "History", DifficultyScore: 5, Priority: PriorityLow, EstimatedHours: 3},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    3, // round(180/45)=4, *0.8=3.2 floored
		},
		{
			name:        "zero estimated hours still yields one session",
			topic:       Topic{Name: "Tiny", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 0},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    1,
		},
		{
			name:        "low priority cannot reduce below one session",
			topic:       Topic{Name: "Tiny", DifficultyScore: 2, Priority: PriorityLow, EstimatedHours: 0.5},
			baseMinutes: 45,
			horizonDays: 14,
			expected:    1, // round(30/45)=1, *0.8=0.8 floored to 0, raised to 1
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sessionsForTopic(tt.topic, tt.baseMinutes, tt.horizonDays))
		})
	}
}

func TestDistributeSessions_InvalidHorizon(t *testing.T) {
	topics := []Topic{{Name: "Algebra", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 3}}
	normal := Urgency{Level: UrgencyNormal, Multiplier: 1.0}

	for _, horizon := range []int{0, -1, MaxHorizonDays + 1} {
		_, err := DistributeSessions(topics, horizon, normal, testToday())
		assert.ErrorIs(t, err, ErrInvalidHorizon, "horizon %d", horizon)
	}
}

func TestDistributeSessions_EmptyTopics(t *testing.T) {
	sessions, err := DistributeSessions(nil, 7, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDistributeSessions_SpreadsAcrossLeastLoadedDays(t *testing.T) {
	topics := []Topic{
		{Name: "Algebra", DifficultyScore: 8, Priority: PriorityHigh, EstimatedHours: 6},
	}
	today := testToday()

	sessions, err := DistributeSessions(topics, 5, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, today)
	require.NoError(t, err)
	require.Len(t, sessions, 10)

	perDay := make(map[string]int)
	for _, s := range sessions {
		perDay[s.Date.String()]++
		assert.Equal(t, 45, s.DurationMinutes)
		assert.Equal(t, "Algebra", s.Topic)
	}
	// 10 sessions over 5 days, greedy least-loaded: exactly two per day.
	require.Len(t, perDay, 5)
	for day, count := range perDay {
		assert.Equal(t, 2, count, "day %s", day)
	}

	// All dates inside the horizon.
	for _, s := range sessions {
		offset := today.DaysUntil(s.Date)
		assert.GreaterOrEqual(t, offset, 0)
		assert.Less(t, offset, 5)
	}
}

func TestDistributeSessions_FocusByPositionInGroup(t *testing.T) {
	topics := []Topic{
		{Name: "Geometry", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 3},
	}

	sessions, err := DistributeSessions(topics, 14, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())
	require.NoError(t, err)
	require.Len(t, sessions, 4)

	intro, deep, review := 0, 0, 0
	for _, s := range sessions {
		switch s.Focus {
		case focusIntroduction:
			intro++
			assert.Equal(t, SessionTypeLearning, s.SessionType)
			assert.False(t, s.PrerequisitesCovered)
		case focusDeepDive:
			deep++
			assert.Equal(t, SessionTypeLearning, s.SessionType)
		case focusReview:
			review++
			assert.Equal(t, SessionTypeReview, s.SessionType)
		}
	}
	assert.Equal(t, 1, intro)
	assert.Equal(t, 2, deep)
	assert.Equal(t, 1, review)
}

func TestDistributeSessions_SingleSessionIsIntroduction(t *testing.T) {
	topics := []Topic{
		{Name: "Tiny", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 0.5},
	}

	sessions, err := DistributeSessions(topics, 7, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	assert.Equal(t, focusIntroduction, sessions[0].Focus)
	assert.Equal(t, SessionTypeLearning, sessions[0].SessionType)
}

func TestDistributeSessions_CopiesTopicSnapshot(t *testing.T) {
	topics := []Topic{
		{Name: "Calculus", DifficultyScore: 9, Priority: PriorityHigh, EstimatedHours: 1},
	}

	sessions, err := DistributeSessions(topics, 7, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())
	require.NoError(t, err)
	require.NotEmpty(t, sessions)

	for _, s := range sessions {
		assert.Equal(t, PriorityHigh, s.Priority)
		assert.Equal(t, 9, s.Difficulty)
		assert.Equal(t, CognitiveLoadHigh, s.CognitiveLoad)
		assert.Equal(t, SessionStatusScheduled, s.Status)
	}
}

func TestDistributeSessions_MoreHoursMeansMoreSessions(t *testing.T) {
	topics := []Topic{
		{Name: "A", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 10},
		{Name: "B", DifficultyScore: 5, Priority: PriorityMedium, EstimatedHours: 2},
	}

	sessions, err := DistributeSessions(topics, 30, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.Topic]++
	}
	assert.Greater(t, counts["A"], counts["B"])
}

func TestDistributeSessions_SortedByDate(t *testing.T) {
	topics := []Topic{
		{Name: "Algebra", DifficultyScore: 8, Priority: PriorityHigh, EstimatedHours: 6},
		{Name: "Geometry", DifficultyScore: 3, Priority: PriorityMedium, EstimatedHours: 3},
	}

	sessions, err := DistributeSessions(topics, 7, Urgency{Level: UrgencyNormal, Multiplier: 1.0}, testToday())
	require.NoError(t, err)

	for i := 1; i < len(sessions); i++ {
		assert.False(t, sessions[i].Date.Before(sessions[i-1].Date.Time))
	}
}

func TestDistributeSessions_CriticalUrgencyUsesLongSessions(t *testing.T) {
	topics := []Topic{
		{Name: "Algebra", DifficultyScore: 8, Priority: PriorityHigh, EstimatedHours: 6},
	}
	critical := Urgency{Level: UrgencyCritical, Multiplier: 2.5, DaysRemaining: 2, HasDeadline: true}

	sessions, err := DistributeSessions(topics, 2, critical, testToday())
	require.NoError(t, err)
	// round(360/90)=4, *1.5=6, *1.3=7.8 floored to 7, capped at 2*2=4.
	require.Len(t, sessions, 4)
	for _, s := range sessions {
		assert.Equal(t, 90, s.DurationMinutes)
	}
}
