package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeams(ctx context.Context, tx *sqlx.Tx, teams []league.Team) error {
	if len(teams) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO teams (id, tournament_id, name)
            VALUES (:id, :tournament_id, :name)`, teams)
	return err
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*league.Team, error) {
	var team league.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, league.ErrNotFound)
	}
	return &team, err
}

func (s *TeamStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Team, error) {
	var team league.Team
	err := tx.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, league.ErrNotFound)
	}
	return &team, err
}

func (s *TeamStore) GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE tournament_id = ? ORDER BY created_at ASC, name ASC", tournamentID)
	return teams, err
}

// UpdateMatchStats writes back the win/loss/draw/points aggregates after a
// match completion.
func (s *TeamStore) UpdateMatchStats(ctx context.Context, tx *sqlx.Tx, team *league.Team) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE teams SET
        games_played = :games_played,
        wins = :wins,
        losses = :losses,
        draws = :draws,
        points_for = :points_for,
        points_against = :points_against
        WHERE id = :id`, team)
	return err
}

// UpdateSpiritStats recomputes a team's spirit aggregates from the full set
// of spirit scores it has received. Runs inside the submission transaction.
func (s *TeamStore) UpdateSpiritStats(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `UPDATE teams SET
        total_spirit_score = (SELECT COALESCE(SUM(total_score), 0) FROM spirit_scores WHERE scored_team_id = ?),
        spirit_count = (SELECT COUNT(*) FROM spirit_scores WHERE scored_team_id = ?),
        average_spirit_score = (SELECT COALESCE(AVG(total_score), 0) FROM spirit_scores WHERE scored_team_id = ?)
        WHERE id = ?`, teamID, teamID, teamID, teamID)
	return err
}
