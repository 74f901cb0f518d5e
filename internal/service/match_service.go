package service

import (
	"context"
	"fmt"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/events"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type MatchService struct {
	db      *sqlx.DB
	matches *store.MatchStore
	teams   *store.TeamStore

	broadcaster events.Broadcaster
	clock       clockwork.Clock
}

func NewMatchService(db *sqlx.DB, matches *store.MatchStore, teams *store.TeamStore, broadcaster events.Broadcaster, clock clockwork.Clock) *MatchService {
	return &MatchService{
		db:          db,
		matches:     matches,
		teams:       teams,
		broadcaster: broadcaster,
		clock:       clock,
	}
}

// UpdateScore records the current score of a match. The first update on a
// scheduled match starts it, which is gated on both teams having settled
// their spirit-score obligations. Winner and draw flags are recomputed on
// every update so corrections before completion stay consistent.
func (s *MatchService) UpdateScore(ctx context.Context, matchID uuid.UUID, scoreA, scoreB int, actorID uuid.UUID) (*league.Match, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, &league.ValidationError{Reason: fmt.Sprintf("scores must be non-negative, got %d and %d", scoreA, scoreB)}
	}

	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	started := false
	if match.Status == league.MatchScheduled {
		if err := s.checkEligibility(ctx, match); err != nil {
			return nil, err
		}
		started = true
	} else if match.Status != league.MatchInProgress {
		return nil, &league.InvalidTransitionError{MatchID: matchID, From: match.Status, To: league.MatchInProgress}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if started {
		now := s.clock.Now().UTC()
		ok, err := s.matches.StartMatch(ctx, tx, matchID, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Lost the race to another updater. Re-read; only a match
			// that is genuinely past in_progress is an error.
			current, err := s.matches.GetMatchTx(ctx, tx, matchID)
			if err != nil {
				return nil, err
			}
			if current.Status != league.MatchInProgress {
				return nil, &league.InvalidTransitionError{MatchID: matchID, From: current.Status, To: league.MatchInProgress}
			}
			started = false
			match = current
		} else {
			match.Status = league.MatchInProgress
			match.ActualStartTime = utils.Ptr(now)
		}
	}

	match.ScoreA = scoreA
	match.ScoreB = scoreB
	match.WinnerID = nil
	match.IsDraw = scoreA == scoreB
	switch {
	case scoreA > scoreB:
		match.WinnerID = utils.Ptr(match.TeamAID)
	case scoreB > scoreA:
		match.WinnerID = utils.Ptr(match.TeamBID)
	}
	match.UpdatedBy = utils.Ptr(actorID)

	if err := s.matches.UpdateScore(ctx, tx, match); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	if started {
		s.broadcaster.Broadcast(events.Event{
			Type:         events.TypeMatchStarted,
			TournamentID: match.TournamentID,
			OccurredAt:   now,
			Payload: events.MatchStarted{
				MatchID:   matchID,
				TeamAID:   match.TeamAID,
				TeamBID:   match.TeamBID,
				StartedAt: *match.ActualStartTime,
			},
		})
	}
	s.broadcaster.Broadcast(events.Event{
		Type:         events.TypeScoreUpdated,
		TournamentID: match.TournamentID,
		OccurredAt:   now,
		Payload: events.ScoreUpdated{
			MatchID: matchID,
			ScoreA:  scoreA,
			ScoreB:  scoreB,
		},
	})

	return match, nil
}

// checkEligibility refuses a match start while either participant owes
// spirit scores for earlier completed matches.
func (s *MatchService) checkEligibility(ctx context.Context, match *league.Match) error {
	blocked := make(map[uuid.UUID][]league.PendingSpiritScore)
	for _, teamID := range []uuid.UUID{match.TeamAID, match.TeamBID} {
		pending, err := s.matches.PendingSpiritScores(ctx, teamID)
		if err != nil {
			return err
		}
		if len(pending) > 0 {
			blocked[teamID] = pending
		}
	}
	if len(blocked) > 0 {
		return &league.EligibilityBlockedError{TeamPending: blocked}
	}
	return nil
}

// CompleteMatch finishes an in-progress match and folds the result into
// both teams' standings. The status write is conditional on the match
// still being in_progress, so concurrent or repeated completions apply
// standings exactly once; the losers of that race get an
// InvalidTransitionError.
func (s *MatchService) CompleteMatch(ctx context.Context, matchID uuid.UUID) (*league.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.matches.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	ok, err := s.matches.CompleteMatch(ctx, tx, matchID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &league.InvalidTransitionError{MatchID: matchID, From: match.Status, To: league.MatchCompleted}
	}
	match.Status = league.MatchCompleted
	match.ActualEndTime = utils.Ptr(now)

	for _, teamID := range []uuid.UUID{match.TeamAID, match.TeamBID} {
		team, err := s.teams.GetTeamTx(ctx, tx, teamID)
		if err != nil {
			return nil, err
		}
		applyCompletion(team, match)
		if err := s.teams.UpdateMatchStats(ctx, tx, team); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(events.Event{
		Type:         events.TypeMatchCompleted,
		TournamentID: match.TournamentID,
		OccurredAt:   now,
		Payload: events.MatchCompleted{
			MatchID:  matchID,
			ScoreA:   match.ScoreA,
			ScoreB:   match.ScoreB,
			WinnerID: match.WinnerID,
			IsDraw:   match.IsDraw,
		},
	})

	return match, nil
}

// CancelMatch moves a scheduled or in-progress match to cancelled.
// Cancelled matches are excluded from standings.
func (s *MatchService) CancelMatch(ctx context.Context, matchID uuid.UUID) (*league.Match, error) {
	return s.escapeTransition(ctx, matchID, league.MatchCancelled, events.TypeMatchCancelled)
}

// PostponeMatch moves a scheduled match to postponed.
func (s *MatchService) PostponeMatch(ctx context.Context, matchID uuid.UUID) (*league.Match, error) {
	return s.escapeTransition(ctx, matchID, league.MatchPostponed, events.TypeMatchPostponed)
}

func (s *MatchService) escapeTransition(ctx context.Context, matchID uuid.UUID, to league.MatchStatus, eventType string) (*league.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.matches.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	if !league.CanTransition(match.Status, to) {
		return nil, &league.InvalidTransitionError{MatchID: matchID, From: match.Status, To: to}
	}

	ok, err := s.matches.UpdateStatus(ctx, tx, matchID, match.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &league.InvalidTransitionError{MatchID: matchID, From: match.Status, To: to}
	}
	match.Status = to

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(events.Event{
		Type:         eventType,
		TournamentID: match.TournamentID,
		OccurredAt:   s.clock.Now().UTC(),
		Payload: events.MatchStatusChanged{
			MatchID: matchID,
			Status:  string(to),
		},
	})

	return match, nil
}

// GetMatch returns a single match.
func (s *MatchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*league.Match, error) {
	return s.matches.GetMatch(ctx, matchID)
}
