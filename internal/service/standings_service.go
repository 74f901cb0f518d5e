package service

import (
	"context"
	"sort"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/google/uuid"
)

// applyCompletion folds one completed match into a team's aggregate
// stats. Pure arithmetic; the caller is responsible for invoking it
// exactly once per team per confirmed completion.
func applyCompletion(team *league.Team, match *league.Match) {
	var scoredFor, scoredAgainst int
	switch team.ID {
	case match.TeamAID:
		scoredFor, scoredAgainst = match.ScoreA, match.ScoreB
	case match.TeamBID:
		scoredFor, scoredAgainst = match.ScoreB, match.ScoreA
	default:
		return
	}

	team.GamesPlayed++
	team.PointsFor += scoredFor
	team.PointsAgainst += scoredAgainst

	switch {
	case match.IsDraw:
		team.Draws++
	case match.WinnerID != nil && *match.WinnerID == team.ID:
		team.Wins++
	default:
		team.Losses++
	}
}

type StandingsService struct {
	teams *store.TeamStore
}

func NewStandingsService(teams *store.TeamStore) *StandingsService {
	return &StandingsService{teams: teams}
}

// Leaderboard ranks a tournament's teams. The order key, descending:
// competition points (3 per win, 1 per draw), then point differential,
// then points for, then average spirit score. A full tie keeps the
// stored team order.
func (s *StandingsService) Leaderboard(ctx context.Context, tournamentID uuid.UUID) ([]league.Team, error) {
	teams, err := s.teams.GetTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	RankTeams(teams)
	return teams, nil
}

// RankTeams sorts teams into leaderboard order in place, stably.
func RankTeams(teams []league.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := &teams[i], &teams[j]
		if a.CompetitionPoints() != b.CompetitionPoints() {
			return a.CompetitionPoints() > b.CompetitionPoints()
		}
		if a.PointDifferential() != b.PointDifferential() {
			return a.PointDifferential() > b.PointDifferential()
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.AverageSpiritScore > b.AverageSpiritScore
	})
}
