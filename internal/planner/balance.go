package planner

import (
	"math"
	"sort"
)

// MinSessionMinutes is the hard floor below which balancing never shrinks a
// session.
const MinSessionMinutes = 30

// BalanceLoad shrinks session durations proportionally on days whose total
// exceeds the daily-hour budget, then orders each day's sessions from easiest
// to hardest for a gradual cognitive ramp. Durations are only ever reduced,
// never grown back, so total planned time is conserved or decreasing through
// the pipeline.
//
// The 30-minute floor can keep an overloaded day above its budget; that is
// deliberate, usability beats the cap.
func BalanceLoad(sessions []Session, dailyHours float64) []Session {
	byDate := make(map[string][]Session)
	var dates []string
	for _, s := range sessions {
		key := s.Date.String()
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], s)
	}
	sort.Strings(dates)

	budget := dailyHours * 60
	balanced := make([]Session, 0, len(sessions))
	for _, key := range dates {
		day := byDate[key]

		if budget > 0 {
			total := 0
			for _, s := range day {
				total += s.DurationMinutes
			}
			if float64(total) > budget {
				factor := budget / float64(total)
				for i := range day {
					reduced := int(math.Floor(float64(day[i].DurationMinutes) * factor))
					if reduced < MinSessionMinutes {
						reduced = MinSessionMinutes
					}
					day[i].DurationMinutes = reduced
				}
			}
		}

		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Difficulty < day[j].Difficulty
		})
		balanced = append(balanced, day...)
	}
	return balanced
}
