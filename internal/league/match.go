package league

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
	MatchPostponed  MatchStatus = "postponed"
)

type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`

	TeamAID uuid.UUID `db:"team_a_id" json:"team_a_id"`
	TeamBID uuid.UUID `db:"team_b_id" json:"team_b_id"`

	Field string `db:"field" json:"field"`
	Round string `db:"round" json:"round"`

	ScheduledTime   time.Time  `db:"scheduled_time" json:"scheduled_time"`
	ActualStartTime *time.Time `db:"actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `db:"actual_end_time" json:"actual_end_time,omitempty"`

	Status MatchStatus `db:"status" json:"status"`

	ScoreA int `db:"score_a" json:"score_a"`
	ScoreB int `db:"score_b" json:"score_b"`

	// WinnerID is nil while the match is undecided and on a draw.
	WinnerID *uuid.UUID `db:"winner_id" json:"winner_id,omitempty"`
	IsDraw   bool       `db:"is_draw" json:"is_draw"`

	// UpdatedBy records the actor behind the last score update.
	UpdatedBy *uuid.UUID `db:"updated_by" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Opponent returns the other team of the match, or uuid.Nil when teamID
// is not a participant.
func (m *Match) Opponent(teamID uuid.UUID) uuid.UUID {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	}
	return uuid.Nil
}

// HasTeam reports whether teamID plays in this match.
func (m *Match) HasTeam(teamID uuid.UUID) bool {
	return teamID == m.TeamAID || teamID == m.TeamBID
}
