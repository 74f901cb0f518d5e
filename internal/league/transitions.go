package league

// matchTransitions is the full lifecycle transition table. Anything not
// listed is rejected, including completing a match that never started.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchScheduled:  {MatchInProgress, MatchCancelled, MatchPostponed},
	MatchInProgress: {MatchCompleted, MatchCancelled},
}

// CanTransition reports whether the lifecycle allows moving a match from
// one status to another.
func CanTransition(from, to MatchStatus) bool {
	for _, allowed := range matchTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
