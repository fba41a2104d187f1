// Package gamification scores completed study sessions into XP, levels,
// streaks and achievements. Everything here is a pure function over a plan.
package gamification

import (
	"math"

	"github.com/studyloop/studyloop/internal/planner"
)

// Stats is the gamification summary for one user's plan.
type Stats struct {
	TotalXP        int      `json:"total_xp"`
	Level          int      `json:"level"`
	XPToNextLevel  int      `json:"xp_to_next_level"`
	StreakDays     int      `json:"streak_days"`
	CompletedCount int      `json:"completed_count"`
	Achievements   []string `json:"achievements"`
}

// SessionXP awards XP for one completed session. A 15-minute block is worth
// 10 XP at baseline difficulty 5; harder topics scale the award up.
func SessionXP(durationMinutes, difficulty int) int {
	if durationMinutes <= 0 {
		return 0
	}
	if difficulty < 1 || difficulty > 10 {
		difficulty = 5
	}
	base := durationMinutes / 15 * 10
	return int(float64(base) * float64(difficulty) / 5.0)
}

// Level converts accumulated XP to a level, starting at 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Sqrt(float64(xp)/100.0)) + 1
}

// XPForLevel returns the minimum XP needed to reach the given level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * 100
}

type achievement struct {
	name      string
	threshold int
}

var xpAchievements = []achievement{
	{"first-steps", 10},
	{"getting-serious", 250},
	{"scholar", 1000},
	{"master", 5000},
}

var streakAchievements = []achievement{
	{"three-day-streak", 3},
	{"week-streak", 7},
	{"month-streak", 30},
}

// Summarize scores all completed sessions in the plan as of today.
func Summarize(plan planner.Plan, today planner.Date) Stats {
	stats := Stats{}
	for _, session := range plan.Sessions {
		if !session.Completed {
			continue
		}
		stats.CompletedCount++
		stats.TotalXP += SessionXP(session.DurationMinutes, session.Difficulty)
	}

	stats.Level = Level(stats.TotalXP)
	stats.XPToNextLevel = XPForLevel(stats.Level+1) - stats.TotalXP
	stats.StreakDays = Streak(plan, today)

	for _, a := range xpAchievements {
		if stats.TotalXP >= a.threshold {
			stats.Achievements = append(stats.Achievements, a.name)
		}
	}
	for _, a := range streakAchievements {
		if stats.StreakDays >= a.threshold {
			stats.Achievements = append(stats.Achievements, a.name)
		}
	}
	return stats
}

// Streak counts consecutive days with at least one completed session, ending
// today or yesterday. A gap of more than one day breaks the streak.
func Streak(plan planner.Plan, today planner.Date) int {
	completedDays := make(map[string]bool)
	for _, session := range plan.Sessions {
		if session.Completed {
			completedDays[session.Date.String()] = true
		}
	}
	if len(completedDays) == 0 {
		return 0
	}

	day := today
	if !completedDays[day.String()] {
		day = day.AddDays(-1)
		if !completedDays[day.String()] {
			return 0
		}
	}

	streak := 0
	for completedDays[day.String()] {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}
