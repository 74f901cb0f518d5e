package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type SpiritStore struct {
	db *sqlx.DB
}

func NewSpiritStore(db *sqlx.DB) *SpiritStore {
	return &SpiritStore{db: db}
}

// CreateSpiritScore inserts a spirit score. The unique index on
// (match_id, scoring_team_id, scored_team_id) is the authoritative guard
// against double submission; a constraint violation maps to
// league.ErrDuplicateSubmission.
func (s *SpiritStore) CreateSpiritScore(ctx context.Context, tx *sqlx.Tx, score *league.SpiritScore) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO spirit_scores
		(id, match_id, scoring_team_id, scored_team_id, rules_knowledge, fouls_contact, fair_mindedness, attitude, communication, total_score, comments, submitted_by)
		VALUES (:id, :match_id, :scoring_team_id, :scored_team_id, :rules_knowledge, :fouls_contact, :fair_mindedness, :attitude, :communication, :total_score, :comments, :submitted_by)`, score)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("match %s, scoring team %s: %w", score.MatchID, score.ScoringTeamID, league.ErrDuplicateSubmission)
		}
		return err
	}
	return nil
}

func (s *SpiritStore) GetSpiritScoresByMatch(ctx context.Context, matchID uuid.UUID) ([]league.SpiritScore, error) {
	var scores []league.SpiritScore
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM spirit_scores WHERE match_id = ? ORDER BY created_at ASC", matchID)
	return scores, err
}

func (s *SpiritStore) GetSpiritScoresForTeam(ctx context.Context, scoredTeamID uuid.UUID) ([]league.SpiritScore, error) {
	var scores []league.SpiritScore
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM spirit_scores WHERE scored_team_id = ? ORDER BY created_at ASC", scoredTeamID)
	return scores, err
}
