// Package events defines the live-update payloads emitted as matches
// progress and the Broadcaster interface transports implement.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeMatchStarted    = "match.started"
	TypeScoreUpdated    = "match.score_updated"
	TypeMatchCompleted  = "match.completed"
	TypeMatchCancelled  = "match.cancelled"
	TypeMatchPostponed  = "match.postponed"
	TypeSpiritSubmitted = "spirit.submitted"
)

// Event is the envelope broadcast to subscribers. Payload holds one of
// the typed payload structs below.
type Event struct {
	Type         string    `json:"type"`
	TournamentID uuid.UUID `json:"tournament_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	Payload      any       `json:"payload"`
}

type MatchStarted struct {
	MatchID   uuid.UUID `json:"match_id"`
	TeamAID   uuid.UUID `json:"team_a_id"`
	TeamBID   uuid.UUID `json:"team_b_id"`
	StartedAt time.Time `json:"started_at"`
}

type ScoreUpdated struct {
	MatchID uuid.UUID `json:"match_id"`
	ScoreA  int       `json:"score_a"`
	ScoreB  int       `json:"score_b"`
}

type MatchCompleted struct {
	MatchID  uuid.UUID  `json:"match_id"`
	ScoreA   int        `json:"score_a"`
	ScoreB   int        `json:"score_b"`
	WinnerID *uuid.UUID `json:"winner_id,omitempty"`
	IsDraw   bool       `json:"is_draw"`
}

type MatchStatusChanged struct {
	MatchID uuid.UUID `json:"match_id"`
	Status  string    `json:"status"`
}

type SpiritSubmitted struct {
	MatchID      uuid.UUID `json:"match_id"`
	ScoredTeamID uuid.UUID `json:"scored_team_id"`
	TotalScore   int       `json:"total_score"`
}

// Broadcaster fans an event out to whoever is listening. Implementations
// must not block the caller; delivery is best effort.
type Broadcaster interface {
	Broadcast(event Event)
}

// NoopBroadcaster is used when no live-update transport is configured.
type NoopBroadcaster struct{}

func (NoopBroadcaster) Broadcast(Event) {}

// MultiBroadcaster fans out to several transports in order.
type MultiBroadcaster []Broadcaster

func (m MultiBroadcaster) Broadcast(event Event) {
	for _, b := range m {
		b.Broadcast(event)
	}
}
