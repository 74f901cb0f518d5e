package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []league.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, team_a_id, team_b_id, field, round, scheduled_time, status, score_a, score_b, is_draw)
		VALUES (:id, :tournament_id, :team_a_id, :team_b_id, :field, :round, :scheduled_time, :status, :score_a, :score_b, :is_draw)`, matches)
	return err
}

func (s *MatchStore) GetMatch(ctx context.Context, id uuid.UUID) (*league.Match, error) {
	var match league.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, league.ErrNotFound)
	}
	return &match, err
}

func (s *MatchStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Match, error) {
	var match league.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, league.ErrNotFound)
	}
	return &match, err
}

func (s *MatchStore) GetMatchesByTournament(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY scheduled_time ASC, field ASC", tournamentID)
	return matches, err
}

// DeleteUnstartedMatches clears a tournament's fixture ahead of
// regeneration. Scheduled and postponed matches go, since the fresh
// fixture re-pairs those teams; matches that have started or finished
// are kept.
func (s *MatchStore) DeleteUnstartedMatches(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE tournament_id = ? AND status IN (?, ?)",
		tournamentID, league.MatchScheduled, league.MatchPostponed)
	return err
}

// StartMatch transitions scheduled -> in_progress with a conditional write:
// the update only lands if the stored status is still scheduled. Returns
// false when another request got there first or the match is past that
// state.
func (s *MatchStore) StartMatch(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, startedAt time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx, `UPDATE matches SET status = ?, actual_start_time = ?
		WHERE id = ? AND status = ?`,
		league.MatchInProgress, startedAt, id, league.MatchScheduled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CompleteMatch transitions in_progress -> completed, again guarded by a
// conditional write so concurrent completions apply standings exactly once.
func (s *MatchStore) CompleteMatch(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, endedAt time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx, `UPDATE matches SET status = ?, actual_end_time = ?
		WHERE id = ? AND status = ?`,
		league.MatchCompleted, endedAt, id, league.MatchInProgress)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateStatus performs an unconditional status write for the escape
// transitions (cancelled, postponed). Callers check the transition table
// first.
func (s *MatchStore) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, from, to league.MatchStatus) (bool, error) {
	res, err := tx.ExecContext(ctx, "UPDATE matches SET status = ? WHERE id = ? AND status = ?", to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateScore writes the score pair and the derived winner/draw fields.
func (s *MatchStore) UpdateScore(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE matches SET
		score_a = :score_a,
		score_b = :score_b,
		winner_id = :winner_id,
		is_draw = :is_draw,
		updated_by = :updated_by
		WHERE id = :id`, match)
	return err
}

// PendingSpiritScores returns, for the given team, every completed match it
// played for which it has not yet submitted a spirit score, oldest first.
func (s *MatchStore) PendingSpiritScores(ctx context.Context, teamID uuid.UUID) ([]league.PendingSpiritScore, error) {
	var pending []league.PendingSpiritScore
	err := s.db.SelectContext(ctx, &pending, `SELECT
			m.id AS match_id,
			o.id AS opponent_id,
			o.name AS opponent,
			m.scheduled_time
		FROM matches m
		JOIN teams o ON o.id = CASE WHEN m.team_a_id = ? THEN m.team_b_id ELSE m.team_a_id END
		WHERE m.status = ?
		  AND (m.team_a_id = ? OR m.team_b_id = ?)
		  AND NOT EXISTS (
			SELECT 1 FROM spirit_scores ss
			WHERE ss.match_id = m.id AND ss.scoring_team_id = ?
		  )
		ORDER BY m.scheduled_time ASC`,
		teamID, league.MatchCompleted, teamID, teamID, teamID)
	return pending, err
}
