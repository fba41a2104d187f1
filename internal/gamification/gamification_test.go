package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studyloop/studyloop/internal/planner"
)

func date(day int) planner.Date {
	return planner.NewDate(time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC))
}

func TestSessionXP(t *testing.T) {
	for _, tc := range []struct {
		name            string
		durationMinutes int
		difficulty      int
		want            int
	}{
		{"baseline difficulty", 60, 5, 40},
		{"hard topic scales up", 60, 10, 80},
		{"easy topic scales down", 60, 1, 8},
		{"partial block rounds down", 50, 5, 30},
		{"short session", 30, 5, 20},
		{"zero duration", 0, 5, 0},
		{"invalid difficulty treated as baseline", 60, 0, 40},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SessionXP(tc.durationMinutes, tc.difficulty))
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(99))
	assert.Equal(t, 2, Level(100))
	assert.Equal(t, 2, Level(399))
	assert.Equal(t, 3, Level(400))
	assert.Equal(t, 4, Level(900))
	assert.Equal(t, 1, Level(-10))
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 0, XPForLevel(1))
	assert.Equal(t, 100, XPForLevel(2))
	assert.Equal(t, 400, XPForLevel(3))
	assert.Equal(t, 900, XPForLevel(4))

	// Level boundaries round-trip.
	for level := 1; level <= 10; level++ {
		assert.Equal(t, level, Level(XPForLevel(level)))
	}
}

func completedSession(day, minutes, difficulty int) planner.Session {
	return planner.Session{
		Date:            date(day),
		Topic:           "Algebra",
		DurationMinutes: minutes,
		Difficulty:      difficulty,
		Completed:       true,
	}
}

func TestStreak(t *testing.T) {
	for _, tc := range []struct {
		name     string
		sessions []planner.Session
		today    planner.Date
		want     int
	}{
		{
			name:     "no completed sessions",
			sessions: []planner.Session{{Date: date(10), Topic: "Algebra"}},
			today:    date(10),
			want:     0,
		},
		{
			name: "streak ending today",
			sessions: []planner.Session{
				completedSession(8, 60, 5),
				completedSession(9, 60, 5),
				completedSession(10, 60, 5),
			},
			today: date(10),
			want:  3,
		},
		{
			name: "streak ending yesterday still counts",
			sessions: []planner.Session{
				completedSession(8, 60, 5),
				completedSession(9, 60, 5),
			},
			today: date(10),
			want:  2,
		},
		{
			name: "gap breaks the streak",
			sessions: []planner.Session{
				completedSession(5, 60, 5),
				completedSession(6, 60, 5),
				completedSession(9, 60, 5),
				completedSession(10, 60, 5),
			},
			today: date(10),
			want:  2,
		},
		{
			name:     "last completion too old",
			sessions: []planner.Session{completedSession(5, 60, 5)},
			today:    date(10),
			want:     0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Streak(planner.Plan{Sessions: tc.sessions}, tc.today))
		})
	}
}

func TestSummarize(t *testing.T) {
	plan := planner.Plan{
		Sessions: []planner.Session{
			completedSession(9, 60, 5),
			completedSession(10, 90, 10),
			{Date: date(11), Topic: "Algebra", DurationMinutes: 60, Difficulty: 5},
		},
	}

	stats := Summarize(plan, date(10))

	// 60min/diff5 = 40 XP, 90min/diff10 = 120 XP. The pending session
	// contributes nothing.
	assert.Equal(t, 160, stats.TotalXP)
	assert.Equal(t, 2, stats.CompletedCount)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 240, stats.XPToNextLevel)
	assert.Equal(t, 2, stats.StreakDays)
	assert.Equal(t, []string{"first-steps"}, stats.Achievements)
}

func TestSummarize_EmptyPlan(t *testing.T) {
	stats := Summarize(planner.Plan{}, date(10))

	assert.Equal(t, 0, stats.TotalXP)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 100, stats.XPToNextLevel)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Empty(t, stats.Achievements)
}
