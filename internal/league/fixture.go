package league

import (
	"time"

	"github.com/google/uuid"
)

// FixtureSlot is the unit of output of the fixture generator: an unplayed,
// timed pairing of two teams. Slots only become Match rows once a schedule
// is persisted.
type FixtureSlot struct {
	TeamAID       uuid.UUID `json:"team_a_id"`
	TeamBID       uuid.UUID `json:"team_b_id"`
	Field         string    `json:"field"`
	Round         string    `json:"round"`
	ScheduledTime time.Time `json:"scheduled_time"`
}
