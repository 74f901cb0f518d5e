package league

import (
	"time"

	"github.com/google/uuid"
)

// Team carries the aggregate stats the standings aggregator maintains.
// Stats are only ever mutated on match completion or spirit submission.
type Team struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	Name         string    `db:"name" json:"name"`

	GamesPlayed   int `db:"games_played" json:"games_played"`
	Wins          int `db:"wins" json:"wins"`
	Losses        int `db:"losses" json:"losses"`
	Draws         int `db:"draws" json:"draws"`
	PointsFor     int `db:"points_for" json:"points_for"`
	PointsAgainst int `db:"points_against" json:"points_against"`

	TotalSpiritScore   int     `db:"total_spirit_score" json:"total_spirit_score"`
	AverageSpiritScore float64 `db:"average_spirit_score" json:"average_spirit_score"`
	SpiritCount        int     `db:"spirit_count" json:"spirit_count"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CompetitionPoints is the primary leaderboard key: 3 per win, 1 per draw.
func (t *Team) CompetitionPoints() int {
	return 3*t.Wins + t.Draws
}

// PointDifferential is the second leaderboard key.
func (t *Team) PointDifferential() int {
	return t.PointsFor - t.PointsAgainst
}
