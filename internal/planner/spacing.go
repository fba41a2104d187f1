package planner

import "sort"

// spacingIntervals is the classic expanding spaced-repetition schedule:
// immediate review, then roughly weekly-doubling gaps. Only five intervals
// are defined; sessions past the fifth keep the dates the distributor gave
// them rather than extrapolating a sixth interval.
var spacingIntervals = [5]int{0, 3, 7, 14, 21}

// ApplySpacing re-dates each topic's session group onto the canonical
// spacing sequence, anchored at the group's first scheduled date. Groups
// with a single session pass through unchanged. The result is re-sorted by
// date with a stable sort, so same-date sessions keep their relative order.
func ApplySpacing(sessions []Session) []Session {
	groups := make(map[string][]int)
	var order []string
	for i, s := range sessions {
		if _, seen := groups[s.Topic]; !seen {
			order = append(order, s.Topic)
		}
		groups[s.Topic] = append(groups[s.Topic], i)
	}

	for _, topic := range order {
		indexes := groups[topic]
		if len(indexes) <= 1 {
			continue
		}
		start := sessions[indexes[0]].Date
		for position, i := range indexes {
			if position >= len(spacingIntervals) {
				break
			}
			sessions[i].Date = start.AddDays(spacingIntervals[position])
			sessions[i].SpacedRepetition = true
			sessions[i].RepetitionInterval = spacingIntervals[position]
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date.Time)
	})
	return sessions
}
