package service

import (
	"context"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentService struct {
	db          *sqlx.DB
	tournaments *store.TournamentStore
	teams       *store.TeamStore
	matches     *store.MatchStore
}

func NewTournamentService(db *sqlx.DB, tournaments *store.TournamentStore, teams *store.TeamStore, matches *store.MatchStore) *TournamentService {
	return &TournamentService{
		db:          db,
		tournaments: tournaments,
		teams:       teams,
		matches:     matches,
	}
}

type CreateTournamentInput struct {
	Name              string
	Format            league.ScheduleFormat
	StartDate         time.Time
	MatchDurationMins int
	TeamNames         []string
	FieldNames        []string
}

type TournamentData struct {
	Tournament *league.Tournament `json:"tournament"`
	Teams      []league.Team      `json:"teams"`
	Fields     []league.Field     `json:"fields"`
	Matches    []league.Match     `json:"matches"`
}

// CreateTournament registers a tournament with its teams and fields in one
// transaction. The fixture is generated separately once the organizer is
// happy with the lineup.
func (s *TournamentService) CreateTournament(ctx context.Context, ownerID uuid.UUID, input CreateTournamentInput) (uuid.UUID, error) {
	if len(input.TeamNames) < 2 {
		return uuid.Nil, &league.InvalidScheduleInputError{Reason: "need at least 2 teams"}
	}
	if len(input.FieldNames) < 1 {
		return uuid.Nil, &league.InvalidScheduleInputError{Reason: "need at least 1 field"}
	}
	if input.MatchDurationMins <= 0 {
		return uuid.Nil, &league.InvalidScheduleInputError{Reason: "match duration must be positive"}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	tournamentID := uuid.New()
	tournament := league.Tournament{
		ID:                tournamentID,
		OwnerID:           ownerID,
		Name:              input.Name,
		Status:            league.TournamentDraft,
		Format:            input.Format,
		StartDate:         input.StartDate,
		MatchDurationMins: input.MatchDurationMins,
	}
	if err := s.tournaments.CreateTournament(ctx, tx, &tournament); err != nil {
		return uuid.Nil, err
	}

	teams := make([]league.Team, 0, len(input.TeamNames))
	for _, name := range input.TeamNames {
		teams = append(teams, league.Team{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Name:         name,
		})
	}
	if err := s.teams.CreateTeams(ctx, tx, teams); err != nil {
		return uuid.Nil, err
	}

	fields := make([]league.Field, 0, len(input.FieldNames))
	for _, name := range input.FieldNames {
		fields = append(fields, league.Field{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Name:         name,
		})
	}
	if err := s.tournaments.CreateFields(ctx, tx, fields); err != nil {
		return uuid.Nil, err
	}

	return tournamentID, tx.Commit()
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id uuid.UUID) (*TournamentData, error) {
	tournament, err := s.tournaments.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.GetTeamsByTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.tournaments.GetFields(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := s.matches.GetMatchesByTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TournamentData{
		Tournament: tournament,
		Teams:      teams,
		Fields:     fields,
		Matches:    matches,
	}, nil
}

func (s *TournamentService) GetTournamentsForOwner(ctx context.Context, ownerID uuid.UUID) ([]league.Tournament, error) {
	return s.tournaments.GetTournamentsByOwner(ctx, ownerID)
}

// ScheduleOptions tunes schedule creation.
type ScheduleOptions struct {
	// SwissRounds overrides the default swiss round count.
	SwissRounds int

	// SkipBalancing keeps the generator's field rotation, which is
	// collision free. Balancing equalizes per-field load but may place
	// two matches on one field at the same time.
	SkipBalancing bool
}

// CreateSchedule generates, balances and persists the fixture for a
// tournament. Regeneration replaces scheduled and postponed matches;
// matches that have started or finished are kept, so standings are never
// invalidated.
func (s *TournamentService) CreateSchedule(ctx context.Context, tournamentID uuid.UUID, opts ScheduleOptions) ([]league.Match, error) {
	tournament, err := s.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.GetTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	fields, err := s.tournaments.GetFields(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(tournament.MatchDurationMins) * time.Minute
	slots, err := GenerateFixtures(tournament.Format, teams, fields, tournament.StartDate, duration, GenerateOptions{
		SwissRounds: opts.SwissRounds,
	})
	if err != nil {
		return nil, err
	}
	if !opts.SkipBalancing {
		slots = BalanceFields(slots, fields)
	}

	matches := make([]league.Match, 0, len(slots))
	for _, slot := range slots {
		matches = append(matches, league.Match{
			ID:            uuid.New(),
			TournamentID:  tournamentID,
			TeamAID:       slot.TeamAID,
			TeamBID:       slot.TeamBID,
			Field:         slot.Field,
			Round:         slot.Round,
			ScheduledTime: slot.ScheduledTime,
			Status:        league.MatchScheduled,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.matches.DeleteUnstartedMatches(ctx, tx, tournamentID); err != nil {
		return nil, err
	}
	if err := s.matches.CreateMatches(ctx, tx, matches); err != nil {
		return nil, err
	}
	if tournament.Status == league.TournamentDraft {
		if err := s.tournaments.UpdateTournamentStatus(ctx, tx, tournamentID, league.TournamentActive); err != nil {
			return nil, err
		}
	}

	return matches, tx.Commit()
}
