package trivia

// PickUnseen drops every candidate whose id is in previous and picks one of
// the rest with intn. ok is false when nothing is left.
func PickUnseen(candidates []Question, previous []int64, intn func(n int) int) (q Question, ok bool) {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]Question, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.ID]; !dup {
			unseen = append(unseen, c)
		}
	}
	if len(unseen) == 0 {
		return Question{}, false
	}
	return unseen[intn(len(unseen))], true
}
