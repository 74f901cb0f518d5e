package service

import (
	"context"
	"testing"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTournament_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateTournamentInput
	}{
		{"one team", CreateTournamentInput{Name: "T", Format: league.RoundRobin, StartDate: time.Now(), MatchDurationMins: 90, TeamNames: []string{"A"}, FieldNames: []string{"F1"}}},
		{"no fields", CreateTournamentInput{Name: "T", Format: league.RoundRobin, StartDate: time.Now(), MatchDurationMins: 90, TeamNames: []string{"A", "B"}}},
		{"zero duration", CreateTournamentInput{Name: "T", Format: league.RoundRobin, StartDate: time.Now(), TeamNames: []string{"A", "B"}, FieldNames: []string{"F1"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tournaments.CreateTournament(ctx, env.userID, tc.input)
			var scheduleErr *league.InvalidScheduleInputError
			require.ErrorAs(t, err, &scheduleErr)
		})
	}
}

func TestCreateSchedule_ActivatesTournament(t *testing.T) {
	env := setupTestEnv(t)
	id, _, _ := scheduleTournament(t, env)

	data, err := env.tournaments.GetTournamentData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, league.TournamentActive, data.Tournament.Status)
	assert.Len(t, data.Matches, 6)
	assert.Len(t, data.Fields, 2)
}

func TestCreateSchedule_RegenerationKeepsStartedMatches(t *testing.T) {
	env := setupTestEnv(t)
	id, _, matches := scheduleTournament(t, env)
	ctx := context.Background()

	started := matchInRound(t, matches, "Round 1")
	_, err := env.matchSvc.UpdateScore(ctx, started.ID, 5, 3, env.userID)
	require.NoError(t, err)

	regenerated, err := env.tournaments.CreateSchedule(ctx, id, ScheduleOptions{})
	require.NoError(t, err)
	assert.Len(t, regenerated, 6)

	all, err := env.matchStore.GetMatchesByTournament(ctx, id)
	require.NoError(t, err)
	assert.Len(t, all, 7, "6 fresh matches plus the in-progress survivor")

	survivor, err := env.matchStore.GetMatch(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, league.MatchInProgress, survivor.Status)
	assert.Equal(t, 5, survivor.ScoreA)

	for _, old := range matches {
		if old.ID == started.ID {
			continue
		}
		_, err := env.matchStore.GetMatch(ctx, old.ID)
		assert.ErrorIs(t, err, league.ErrNotFound, "scheduled matches are replaced on regeneration")
	}
}

func TestCreateSchedule_RegenerationReplacesPostponed(t *testing.T) {
	env := setupTestEnv(t)
	id, _, matches := scheduleTournament(t, env)
	ctx := context.Background()

	postponed := matchInRound(t, matches, "Round 1")
	_, err := env.matchSvc.PostponeMatch(ctx, postponed.ID)
	require.NoError(t, err)

	// Regeneration re-pairs those teams, so keeping the postponed match
	// would duplicate its pairing.
	_, err = env.tournaments.CreateSchedule(ctx, id, ScheduleOptions{})
	require.NoError(t, err)

	_, err = env.matchStore.GetMatch(ctx, postponed.ID)
	assert.ErrorIs(t, err, league.ErrNotFound)

	all, err := env.matchStore.GetMatchesByTournament(ctx, id)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestCreateSchedule_UnknownTournament(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.tournaments.CreateSchedule(context.Background(), uuid.New(), ScheduleOptions{})
	require.ErrorIs(t, err, league.ErrNotFound)
}
