package league

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for the recoverable failure modes of the scheduling and
// match-lifecycle core. All of these are user-facing; none indicate a
// system fault.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateSubmission = errors.New("spirit score already submitted for this match")
)

// InvalidScheduleInputError reports malformed fixture-generator input. No
// partial fixture is persisted when this is returned.
type InvalidScheduleInputError struct {
	Reason string
}

func (e *InvalidScheduleInputError) Error() string {
	return "invalid schedule input: " + e.Reason
}

// ValidationError reports a request value outside its allowed range, e.g.
// a negative score or a spirit sub-score above 4.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InvalidTransitionError reports an out-of-order lifecycle request, e.g.
// completing a match that never started.
type InvalidTransitionError struct {
	MatchID uuid.UUID
	From    MatchStatus
	To      MatchStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("match %s: cannot transition from %s to %s", e.MatchID, e.From, e.To)
}

// PendingSpiritScore is one unresolved spirit-scoring obligation: a
// completed match for which the team has not yet rated its opponent.
type PendingSpiritScore struct {
	MatchID       uuid.UUID `db:"match_id" json:"match_id"`
	OpponentID    uuid.UUID `db:"opponent_id" json:"opponent_id"`
	Opponent      string    `db:"opponent" json:"opponent"`
	ScheduledTime time.Time `db:"scheduled_time" json:"scheduled_time"`
}

// EligibilityBlockedError refuses a match start because one or both teams
// owe spirit scores for earlier completed matches. It carries the full
// pending list so the caller can direct teams to resolve it.
type EligibilityBlockedError struct {
	TeamPending map[uuid.UUID][]PendingSpiritScore
}

func (e *EligibilityBlockedError) Error() string {
	n := 0
	for _, p := range e.TeamPending {
		n += len(p)
	}
	return fmt.Sprintf("match blocked: %d outstanding spirit score(s)", n)
}
