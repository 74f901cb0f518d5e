package league

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to MatchStatus }{
		{MatchScheduled, MatchInProgress},
		{MatchScheduled, MatchCancelled},
		{MatchScheduled, MatchPostponed},
		{MatchInProgress, MatchCompleted},
		{MatchInProgress, MatchCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	refused := []struct{ from, to MatchStatus }{
		{MatchScheduled, MatchCompleted},
		{MatchInProgress, MatchPostponed},
		{MatchCompleted, MatchInProgress},
		{MatchCompleted, MatchCompleted},
		{MatchCancelled, MatchInProgress},
		{MatchPostponed, MatchCompleted},
	}
	for _, tc := range refused {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be refused", tc.from, tc.to)
	}
}

func TestSpiritSubScores(t *testing.T) {
	sub := SpiritSubScores{RulesKnowledge: 1, FoulsContact: 2, FairMindedness: 3, Attitude: 4, Communication: 0}
	assert.Equal(t, 10, sub.Total())
	assert.NoError(t, sub.Validate())

	tooHigh := SpiritSubScores{Attitude: 5}
	var validationErr *ValidationError
	require.ErrorAs(t, tooHigh.Validate(), &validationErr)

	negative := SpiritSubScores{FoulsContact: -1}
	require.ErrorAs(t, negative.Validate(), &validationErr)
}

func TestMatchOpponent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	m := Match{TeamAID: a, TeamBID: b}

	assert.Equal(t, b, m.Opponent(a))
	assert.Equal(t, a, m.Opponent(b))
	assert.Equal(t, uuid.Nil, m.Opponent(c))
	assert.True(t, m.HasTeam(a))
	assert.False(t, m.HasTeam(c))
}
