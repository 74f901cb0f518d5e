package service

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
)

// swissDefaultRounds applies when a swiss schedule is requested without an
// explicit round count.
const swissDefaultRounds = 5

// swissStartHour is the local hour of day the first match of each swiss
// round kicks off.
const swissStartHour = 9

// GenerateOptions tunes fixture generation per format.
type GenerateOptions struct {
	// SwissRounds is only consulted for the swiss format. Zero means the
	// default of 5.
	SwissRounds int

	// Rand drives swiss pairing. Nil falls back to the global source;
	// tests pass a seeded one.
	Rand *rand.Rand
}

// GenerateFixtures produces timed fixture slots for the requested format.
// It is a pure computation over its inputs and persists nothing.
func GenerateFixtures(format league.ScheduleFormat, teams []league.Team, fields []league.Field, startDate time.Time, matchDuration time.Duration, opts GenerateOptions) ([]league.FixtureSlot, error) {
	if len(teams) < 2 {
		return nil, &league.InvalidScheduleInputError{Reason: fmt.Sprintf("need at least 2 teams, got %d", len(teams))}
	}
	if len(fields) < 1 {
		return nil, &league.InvalidScheduleInputError{Reason: "need at least 1 field"}
	}
	if matchDuration <= 0 {
		return nil, &league.InvalidScheduleInputError{Reason: "match duration must be positive"}
	}

	switch format {
	case league.RoundRobin:
		return generateRoundRobin(teams, fields, startDate, matchDuration), nil
	case league.Bracket:
		return generateBracketFirstRound(teams, fields, startDate, matchDuration), nil
	case league.Swiss:
		rounds := opts.SwissRounds
		if rounds == 0 {
			rounds = swissDefaultRounds
		}
		if rounds < 1 {
			return nil, &league.InvalidScheduleInputError{Reason: fmt.Sprintf("swiss rounds must be at least 1, got %d", rounds)}
		}
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return generateSwiss(teams, fields, startDate, matchDuration, rounds, rng), nil
	default:
		return nil, &league.InvalidScheduleInputError{Reason: fmt.Sprintf("unknown format %q", format)}
	}
}

// fieldCycle hands out fields in rotation and advances the shared start
// time by one match duration each time the rotation wraps.
type fieldCycle struct {
	fields   []league.Field
	duration time.Duration
	next     int
	slotTime time.Time
}

func newFieldCycle(fields []league.Field, start time.Time, duration time.Duration) *fieldCycle {
	return &fieldCycle{fields: fields, duration: duration, slotTime: start}
}

func (c *fieldCycle) take() (string, time.Time) {
	if c.next == len(c.fields) {
		c.next = 0
		c.slotTime = c.slotTime.Add(c.duration)
	}
	field := c.fields[c.next].Name
	c.next++
	return field, c.slotTime
}

// reset starts a fresh rotation at the given time, for the next round.
func (c *fieldCycle) reset(start time.Time) {
	c.next = 0
	c.slotTime = start
}

// nextRoundStart is the first slot after the current rotation finishes.
func (c *fieldCycle) nextRoundStart() time.Time {
	if c.next == 0 {
		return c.slotTime
	}
	return c.slotTime.Add(c.duration)
}

// generateRoundRobin schedules every pair of teams exactly once using the
// circle method: hold the first team fixed and rotate the rest by one
// position per round, pairing opposite ends of the array. An odd team
// count gets a synthetic bye slot whose pairings are skipped.
func generateRoundRobin(teams []league.Team, fields []league.Field, startDate time.Time, matchDuration time.Duration) []league.FixtureSlot {
	ids := make([]uuid.UUID, 0, len(teams)+1)
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, uuid.Nil) // bye
	}

	n := len(ids)
	rounds := n - 1
	cycle := newFieldCycle(fields, startDate, matchDuration)

	var slots []league.FixtureSlot
	for round := 1; round <= rounds; round++ {
		for i := 0; i < n/2; i++ {
			teamA, teamB := ids[i], ids[n-1-i]
			if teamA == uuid.Nil || teamB == uuid.Nil {
				continue
			}
			field, slotTime := cycle.take()
			slots = append(slots, league.FixtureSlot{
				TeamAID:       teamA,
				TeamBID:       teamB,
				Field:         field,
				Round:         fmt.Sprintf("Round %d", round),
				ScheduledTime: slotTime,
			})
		}

		// Rotate all but the first position by one.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last

		cycle.reset(cycle.nextRoundStart())
	}

	return slots
}

// generateBracketFirstRound emits the opening round of a single
// elimination bracket: consecutive teams are paired, a trailing odd team
// advances on a bye. Later rounds depend on winners and are generated by
// re-invoking the scheduler once results are in.
func generateBracketFirstRound(teams []league.Team, fields []league.Field, startDate time.Time, matchDuration time.Duration) []league.FixtureSlot {
	totalRounds := int(math.Ceil(math.Log2(float64(len(teams)))))
	roundName := bracketRoundName(1, totalRounds)
	cycle := newFieldCycle(fields, startDate, matchDuration)

	var slots []league.FixtureSlot
	for i := 0; i+1 < len(teams); i += 2 {
		field, slotTime := cycle.take()
		slots = append(slots, league.FixtureSlot{
			TeamAID:       teams[i].ID,
			TeamBID:       teams[i+1].ID,
			Field:         field,
			Round:         roundName,
			ScheduledTime: slotTime,
		})
	}

	return slots
}

// bracketRoundName names rounds counting down from the final: Final,
// Semi-Final, Quarter-Final, then plain round numbers for anything
// earlier.
func bracketRoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semi-Final"
	case 2:
		return "Quarter-Final"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// generateSwiss pairs teams by random shuffle each round, one round per
// calendar day starting at 09:00 local. Pairing is independent of
// standings; an odd team out simply sits the round.
func generateSwiss(teams []league.Team, fields []league.Field, startDate time.Time, matchDuration time.Duration, rounds int, rng *rand.Rand) []league.FixtureSlot {
	ids := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	var slots []league.FixtureSlot
	for round := 1; round <= rounds; round++ {
		rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})

		day := startDate.AddDate(0, 0, round-1)
		roundStart := time.Date(day.Year(), day.Month(), day.Day(), swissStartHour, 0, 0, 0, day.Location())
		cycle := newFieldCycle(fields, roundStart, matchDuration)

		for i := 0; i+1 < len(ids); i += 2 {
			field, slotTime := cycle.take()
			slots = append(slots, league.FixtureSlot{
				TeamAID:       ids[i],
				TeamBID:       ids[i+1],
				Field:         field,
				Round:         fmt.Sprintf("Round %d", round),
				ScheduledTime: slotTime,
			})
		}
	}

	return slots
}
