package service

import (
	"testing"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplyCompletion(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "A"}
	teamB := league.Team{ID: uuid.New(), Name: "B"}

	t.Run("win and loss", func(t *testing.T) {
		a, b := teamA, teamB
		match := &league.Match{
			TeamAID:  a.ID,
			TeamBID:  b.ID,
			ScoreA:   15,
			ScoreB:   11,
			WinnerID: utils.Ptr(a.ID),
		}
		applyCompletion(&a, match)
		applyCompletion(&b, match)

		assert.Equal(t, 1, a.GamesPlayed)
		assert.Equal(t, 1, a.Wins)
		assert.Equal(t, 0, a.Losses)
		assert.Equal(t, 15, a.PointsFor)
		assert.Equal(t, 11, a.PointsAgainst)

		assert.Equal(t, 1, b.GamesPlayed)
		assert.Equal(t, 0, b.Wins)
		assert.Equal(t, 1, b.Losses)
		assert.Equal(t, 11, b.PointsFor)
		assert.Equal(t, 15, b.PointsAgainst)
	})

	t.Run("draw", func(t *testing.T) {
		a, b := teamA, teamB
		match := &league.Match{
			TeamAID: a.ID,
			TeamBID: b.ID,
			ScoreA:  13,
			ScoreB:  13,
			IsDraw:  true,
		}
		applyCompletion(&a, match)
		applyCompletion(&b, match)

		assert.Equal(t, 1, a.Draws)
		assert.Equal(t, 1, b.Draws)
		assert.Equal(t, 0, a.Wins+a.Losses+b.Wins+b.Losses)
	})

	t.Run("non-participant untouched", func(t *testing.T) {
		c := league.Team{ID: uuid.New(), Name: "C"}
		match := &league.Match{TeamAID: teamA.ID, TeamBID: teamB.ID, ScoreA: 10, ScoreB: 5}
		applyCompletion(&c, match)
		assert.Equal(t, 0, c.GamesPlayed)
	})
}

func TestRankTeams(t *testing.T) {
	t.Run("competition points first", func(t *testing.T) {
		teams := []league.Team{
			{Name: "Drawer", Draws: 3},           // 3 points
			{Name: "Winner", Wins: 2, Losses: 1}, // 6 points
		}
		RankTeams(teams)
		assert.Equal(t, "Winner", teams[0].Name)
	})

	t.Run("point differential breaks ties", func(t *testing.T) {
		teams := []league.Team{
			{Name: "Narrow", Wins: 2, PointsFor: 20, PointsAgainst: 18},
			{Name: "Crusher", Wins: 2, PointsFor: 30, PointsAgainst: 10},
			{Name: "Middling", Wins: 2, PointsFor: 25, PointsAgainst: 15},
		}
		RankTeams(teams)
		assert.Equal(t, "Crusher", teams[0].Name)
		assert.Equal(t, "Middling", teams[1].Name)
		assert.Equal(t, "Narrow", teams[2].Name)
	})

	t.Run("points for breaks differential ties", func(t *testing.T) {
		teams := []league.Team{
			{Name: "Low", Wins: 1, PointsFor: 10, PointsAgainst: 5},
			{Name: "High", Wins: 1, PointsFor: 20, PointsAgainst: 15},
		}
		RankTeams(teams)
		assert.Equal(t, "High", teams[0].Name)
	})

	t.Run("spirit average is the last resort", func(t *testing.T) {
		teams := []league.Team{
			{Name: "Grumpy", Wins: 1, PointsFor: 10, PointsAgainst: 5, AverageSpiritScore: 8.5},
			{Name: "Spirited", Wins: 1, PointsFor: 10, PointsAgainst: 5, AverageSpiritScore: 12.0},
		}
		RankTeams(teams)
		assert.Equal(t, "Spirited", teams[0].Name)
	})

	t.Run("full tie keeps input order", func(t *testing.T) {
		teams := []league.Team{
			{Name: "First"},
			{Name: "Second"},
			{Name: "Third"},
		}
		RankTeams(teams)
		assert.Equal(t, []string{"First", "Second", "Third"},
			[]string{teams[0].Name, teams[1].Name, teams[2].Name})
	})
}
