package league

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

type ScheduleFormat string

const (
	RoundRobin ScheduleFormat = "round_robin"
	Bracket    ScheduleFormat = "bracket"
	Swiss      ScheduleFormat = "swiss"
)

type Tournament struct {
	ID                uuid.UUID        `db:"id" json:"id"`
	OwnerID           uuid.UUID        `db:"owner_id" json:"owner_id"`
	Name              string           `db:"name" json:"name"`
	Status            TournamentStatus `db:"status" json:"status"`
	Format            ScheduleFormat   `db:"format" json:"format"`
	StartDate         time.Time        `db:"start_date" json:"start_date"`
	MatchDurationMins int              `db:"match_duration_mins" json:"match_duration_mins"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
}

// Field is a playing field registered for a tournament. Fixture slots
// reference fields by name.
type Field struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	Name         string    `db:"name" json:"name"`
}
