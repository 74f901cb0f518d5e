package league

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubScoreMax bounds each WFDF spirit category; five categories give a
// total out of 20.
const (
	SubScoreMax   = 4
	TotalScoreMax = 5 * SubScoreMax
)

// SpiritSubScores are the five WFDF spirit-of-the-game categories, each
// scored 0-4 by the opposing team after a match.
type SpiritSubScores struct {
	RulesKnowledge int `db:"rules_knowledge" json:"rules_knowledge"`
	FoulsContact   int `db:"fouls_contact" json:"fouls_contact"`
	FairMindedness int `db:"fair_mindedness" json:"fair_mindedness"`
	Attitude       int `db:"attitude" json:"attitude"`
	Communication  int `db:"communication" json:"communication"`
}

// Total sums the five categories.
func (s SpiritSubScores) Total() int {
	return s.RulesKnowledge + s.FoulsContact + s.FairMindedness + s.Attitude + s.Communication
}

// Validate checks every category is within [0, SubScoreMax].
func (s SpiritSubScores) Validate() error {
	for _, v := range []struct {
		name  string
		score int
	}{
		{"rules_knowledge", s.RulesKnowledge},
		{"fouls_contact", s.FoulsContact},
		{"fair_mindedness", s.FairMindedness},
		{"attitude", s.Attitude},
		{"communication", s.Communication},
	} {
		if v.score < 0 || v.score > SubScoreMax {
			return &ValidationError{Reason: fmt.Sprintf("spirit sub-score %s must be between 0 and %d, got %d", v.name, SubScoreMax, v.score)}
		}
	}
	return nil
}

// SpiritScore is one team's sportsmanship rating of its opponent for a
// single match. Immutable once created; at most one row exists per
// (match, scoring team, scored team) triple.
type SpiritScore struct {
	ID            uuid.UUID `db:"id" json:"id"`
	MatchID       uuid.UUID `db:"match_id" json:"match_id"`
	ScoringTeamID uuid.UUID `db:"scoring_team_id" json:"scoring_team_id"`
	ScoredTeamID  uuid.UUID `db:"scored_team_id" json:"scored_team_id"`

	SpiritSubScores

	TotalScore int     `db:"total_score" json:"total_score"`
	Comments   *string `db:"comments" json:"comments,omitempty"`

	SubmittedBy *uuid.UUID `db:"submitted_by" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
