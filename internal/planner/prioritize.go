package planner

import "sort"

// PrioritizeTopics returns a new slice with topics ordered by priority tier,
// then by difficulty, then by name. Under critical or urgent deadlines the
// difficulty direction flips so the riskiest content is scheduled before the
// deadline; otherwise easier topics come first for a gradual ramp.
//
// The sort is stable and the function is pure, so identical input always
// yields identical output.
func PrioritizeTopics(topics []Topic, urgency Urgency) []Topic {
	ordered := make([]Topic, len(topics))
	copy(ordered, topics)

	difficultyOrder := func(t Topic) int {
		if urgency.frontLoadsHardTopics() {
			return 10 - t.DifficultyScore
		}
		return t.DifficultyScore
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		if difficultyOrder(a) != difficultyOrder(b) {
			return difficultyOrder(a) < difficultyOrder(b)
		}
		return a.Name < b.Name
	})
	return ordered
}
