package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/events"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SpiritService struct {
	db      *sqlx.DB
	matches *store.MatchStore
	teams   *store.TeamStore
	spirits *store.SpiritStore

	broadcaster events.Broadcaster
}

func NewSpiritService(db *sqlx.DB, matches *store.MatchStore, teams *store.TeamStore, spirits *store.SpiritStore, broadcaster events.Broadcaster) *SpiritService {
	return &SpiritService{
		db:          db,
		matches:     matches,
		teams:       teams,
		spirits:     spirits,
		broadcaster: broadcaster,
	}
}

// EligibilityReport is the result of the spirit-score gate for one team.
type EligibilityReport struct {
	TeamID   uuid.UUID                   `json:"team_id"`
	Eligible bool                        `json:"eligible"`
	Pending  []league.PendingSpiritScore `json:"pending"`
}

// CanPlay checks whether a team has rated its opponent for every completed
// match it played. Recomputed from live records on every call; nothing is
// cached.
func (s *SpiritService) CanPlay(ctx context.Context, teamID uuid.UUID) (*EligibilityReport, error) {
	if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	pending, err := s.matches.PendingSpiritScores(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &EligibilityReport{
		TeamID:   teamID,
		Eligible: len(pending) == 0,
		Pending:  pending,
	}, nil
}

// SubmitSpiritScore records one team's rating of its opponent for a match.
// The scoring team is inferred as the match participant other than
// scoredTeamID. The rating is immutable once stored; a second submission
// for the same triple returns ErrDuplicateSubmission.
func (s *SpiritService) SubmitSpiritScore(ctx context.Context, matchID, scoredTeamID uuid.UUID, sub league.SpiritSubScores, comments string, submittedBy uuid.UUID) (*league.SpiritScore, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.matches.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasTeam(scoredTeamID) {
		return nil, fmt.Errorf("team %s does not play in match %s: %w", scoredTeamID, matchID, league.ErrNotFound)
	}

	score := &league.SpiritScore{
		ID:              uuid.New(),
		MatchID:         matchID,
		ScoringTeamID:   match.Opponent(scoredTeamID),
		ScoredTeamID:    scoredTeamID,
		SpiritSubScores: sub,
		TotalScore:      sub.Total(),
		Comments:        utils.StringOrNil(comments),
		SubmittedBy:     utils.Ptr(submittedBy),
	}

	if err := s.spirits.CreateSpiritScore(ctx, tx, score); err != nil {
		return nil, err
	}

	// Recompute the scored team's spirit aggregates in the same
	// transaction, so the average always reflects the stored rows.
	if err := s.teams.UpdateSpiritStats(ctx, tx, scoredTeamID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(events.Event{
		Type:         events.TypeSpiritSubmitted,
		TournamentID: match.TournamentID,
		OccurredAt:   time.Now().UTC(),
		Payload: events.SpiritSubmitted{
			MatchID:      matchID,
			ScoredTeamID: scoredTeamID,
			TotalScore:   score.TotalScore,
		},
	})

	return score, nil
}
