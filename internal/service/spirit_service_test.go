package service

import (
	"context"
	"testing"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMatch scores and completes a match so spirit obligations exist.
func playMatch(t *testing.T, env *testEnv, matchID uuid.UUID, scoreA, scoreB int) {
	t.Helper()
	ctx := context.Background()
	_, err := env.matchSvc.UpdateScore(ctx, matchID, scoreA, scoreB, env.userID)
	require.NoError(t, err)
	_, err = env.matchSvc.CompleteMatch(ctx, matchID)
	require.NoError(t, err)
}

func TestSubmitSpiritScore(t *testing.T) {
	env := setupTestEnv(t)
	_, _, matches := scheduleTournament(t, env)
	ctx := context.Background()

	m := matchInRound(t, matches, "Round 1")
	playMatch(t, env, m.ID, 13, 9)

	sub := league.SpiritSubScores{RulesKnowledge: 3, FoulsContact: 2, FairMindedness: 4, Attitude: 3, Communication: 2}
	score, err := env.spiritSvc.SubmitSpiritScore(ctx, m.ID, m.TeamBID, sub, "great opponents", env.userID)
	require.NoError(t, err)

	// Scoring team is inferred as the match's other side.
	assert.Equal(t, m.TeamAID, score.ScoringTeamID)
	assert.Equal(t, m.TeamBID, score.ScoredTeamID)
	assert.Equal(t, 14, score.TotalScore)

	scored, err := env.teamStore.GetTeam(ctx, m.TeamBID)
	require.NoError(t, err)
	assert.Equal(t, 14, scored.TotalSpiritScore)
	assert.Equal(t, 1, scored.SpiritCount)
	assert.InDelta(t, 14.0, scored.AverageSpiritScore, 0.001)
}

func TestSubmitSpiritScore_Duplicate(t *testing.T) {
	env := setupTestEnv(t)
	_, _, matches := scheduleTournament(t, env)
	ctx := context.Background()

	m := matchInRound(t, matches, "Round 1")
	playMatch(t, env, m.ID, 13, 9)

	sub := league.SpiritSubScores{RulesKnowledge: 2, FoulsContact: 2, FairMindedness: 2, Attitude: 2, Communication: 2}
	first, err := env.spiritSvc.SubmitSpiritScore(ctx, m.ID, m.TeamBID, sub, "", env.userID)
	require.NoError(t, err)

	// The second submission for the same triple is refused and the
	// original row stays untouched.
	worse := league.SpiritSubScores{RulesKnowledge: 0, FoulsContact: 0, FairMindedness: 0, Attitude: 0, Communication: 0}
	_, err = env.spiritSvc.SubmitSpiritScore(ctx, m.ID, m.TeamBID, worse, "", env.userID)
	require.ErrorIs(t, err, league.ErrDuplicateSubmission)

	scored, err := env.teamStore.GetTeam(ctx, m.TeamBID)
	require.NoError(t, err)
	assert.Equal(t, first.TotalScore, scored.TotalSpiritScore)
	assert.Equal(t, 1, scored.SpiritCount)

	// The opposite direction is a different triple and still allowed.
	_, err = env.spiritSvc.SubmitSpiritScore(ctx, m.ID, m.TeamAID, sub, "", env.userID)
	require.NoError(t, err)
}

func TestSubmitSpiritScore_Validation(t *testing.T) {
	env := setupTestEnv(t)
	_, teams, matches := scheduleTournament(t, env)
	ctx := context.Background()

	m := matchInRound(t, matches, "Round 1")

	t.Run("sub-score out of range", func(t *testing.T) {
		sub := league.SpiritSubScores{RulesKnowledge: 5}
		_, err := env.spiritSvc.SubmitSpiritScore(ctx, m.ID, m.TeamBID, sub, "", env.userID)
		var validationErr *league.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("scored team not in match", func(t *testing.T) {
		var outsider uuid.UUID
		for _, team := range teams {
			if !((&league.Match{TeamAID: m.TeamAID, TeamBID: m.TeamBID}).HasTeam(team.ID)) {
				outsider = team.ID
				break
			}
		}
		require.NotEqual(t, uuid.Nil, outsider)

		sub := league.SpiritSubScores{RulesKnowledge: 2}
		_, err := env.spiritSvc.SubmitSpiritScore(ctx, m.ID, outsider, sub, "", env.userID)
		require.ErrorIs(t, err, league.ErrNotFound)
	})

	t.Run("unknown match", func(t *testing.T) {
		sub := league.SpiritSubScores{RulesKnowledge: 2}
		_, err := env.spiritSvc.SubmitSpiritScore(ctx, uuid.New(), m.TeamBID, sub, "", env.userID)
		require.ErrorIs(t, err, league.ErrNotFound)
	})
}

func TestCanPlay_PendingCount(t *testing.T) {
	env := setupTestEnv(t)
	_, teams, matches := scheduleTournament(t, env)
	ctx := context.Background()

	team := teams[0]

	// Nothing completed, nothing owed.
	report, err := env.spiritSvc.CanPlay(ctx, team.ID)
	require.NoError(t, err)
	assert.True(t, report.Eligible)
	assert.Empty(t, report.Pending)

	// Complete two of the team's matches without submitting any spirit
	// scores. Both are started before either completes, since completing
	// one would gate the start of the next.
	var played []league.Match
	for _, m := range matches {
		if (m.TeamAID == team.ID || m.TeamBID == team.ID) && len(played) < 2 {
			_, err := env.matchSvc.UpdateScore(ctx, m.ID, 11, 7, env.userID)
			require.NoError(t, err)
			played = append(played, m)
		}
	}
	require.Len(t, played, 2)
	for _, m := range played {
		_, err := env.matchSvc.CompleteMatch(ctx, m.ID)
		require.NoError(t, err)
	}

	report, err = env.spiritSvc.CanPlay(ctx, team.ID)
	require.NoError(t, err)
	assert.False(t, report.Eligible)
	require.Len(t, report.Pending, 2)

	// One submission clears one obligation.
	sub := league.SpiritSubScores{RulesKnowledge: 2, FoulsContact: 3, FairMindedness: 2, Attitude: 2, Communication: 3}
	opponent := played[0].TeamAID
	if opponent == team.ID {
		opponent = played[0].TeamBID
	}
	_, err = env.spiritSvc.SubmitSpiritScore(ctx, played[0].ID, opponent, sub, "", env.userID)
	require.NoError(t, err)

	report, err = env.spiritSvc.CanPlay(ctx, team.ID)
	require.NoError(t, err)
	assert.False(t, report.Eligible)
	require.Len(t, report.Pending, 1)
	assert.Equal(t, played[1].ID, report.Pending[0].MatchID)
}

func TestCanPlay_UnknownTeam(t *testing.T) {
	env := setupTestEnv(t)
	scheduleTournament(t, env)

	_, err := env.spiritSvc.CanPlay(context.Background(), uuid.New())
	require.ErrorIs(t, err, league.ErrNotFound)
}
