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

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *league.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, owner_id, name, status, format, start_date, match_duration_mins)
        VALUES (:id, :owner_id, :name, :status, :format, :start_date, :match_duration_mins)`, tournament)
	return err
}

func (s *TournamentStore) CreateFields(ctx context.Context, tx *sqlx.Tx, fields []league.Field) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO fields (id, tournament_id, name)
            VALUES (:id, :tournament_id, :name)`, fields)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*league.Tournament, error) {
	var tournament league.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tournament %s: %w", id, league.ErrNotFound)
	}
	return &tournament, err
}

func (s *TournamentStore) GetTournamentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]league.Tournament, error) {
	var tournaments []league.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
	return tournaments, err
}

func (s *TournamentStore) GetFields(ctx context.Context, tournamentID uuid.UUID) ([]league.Field, error) {
	var fields []league.Field
	err := s.db.SelectContext(ctx, &fields, "SELECT * FROM fields WHERE tournament_id = ? ORDER BY name ASC", tournamentID)
	return fields, err
}

func (s *TournamentStore) UpdateTournamentStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status league.TournamentStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE id = ?", status, id)
	return err
}
