package service

import (
	"sort"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
)

// BalanceFields redistributes fixture slots so no field carries more than
// its fair share of matches. The result is the same slots sorted by
// scheduled time with only the field assignment changed; max and min
// per-field counts end up differing by at most 1.
//
// Scheduled times are not touched, so reassignment can in principle put
// two matches on the same field at the same time. Callers that need
// collision-free schedules keep the generator's field rotation and skip
// balancing.
func BalanceFields(slots []league.FixtureSlot, fields []league.Field) []league.FixtureSlot {
	if len(fields) == 0 || len(slots) == 0 {
		return slots
	}

	balanced := make([]league.FixtureSlot, len(slots))
	copy(balanced, slots)
	sort.SliceStable(balanced, func(i, j int) bool {
		return balanced[i].ScheduledTime.Before(balanced[j].ScheduledTime)
	})

	target := (len(balanced) + len(fields) - 1) / len(fields)

	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f.Name] = 0
	}
	slotsByField := make(map[string][]int)
	for i, s := range balanced {
		counts[s.Field]++
		slotsByField[s.Field] = append(slotsByField[s.Field], i)
	}

	for _, f := range fields {
		for counts[f.Name] > target {
			// Move the last slot beyond the target to the lightest field.
			idxs := slotsByField[f.Name]
			moved := idxs[len(idxs)-1]
			slotsByField[f.Name] = idxs[:len(idxs)-1]

			dest := lightestField(fields, counts)
			balanced[moved].Field = dest
			slotsByField[dest] = append(slotsByField[dest], moved)
			counts[f.Name]--
			counts[dest]++
		}
	}

	// The target pass only drains fields above the ceiling. A field can
	// still be starved without any field exceeding it, e.g. a rotation
	// that never reached the last field; keep shifting from the heaviest
	// to the lightest until the spread closes.
	for {
		heavy := heaviestField(fields, counts)
		light := lightestField(fields, counts)
		if counts[heavy]-counts[light] <= 1 {
			break
		}

		idxs := slotsByField[heavy]
		moved := idxs[len(idxs)-1]
		slotsByField[heavy] = idxs[:len(idxs)-1]

		balanced[moved].Field = light
		slotsByField[light] = append(slotsByField[light], moved)
		counts[heavy]--
		counts[light]++
	}

	return balanced
}

// heaviestField picks the field with the most assigned matches, breaking
// ties by the supplied field order.
func heaviestField(fields []league.Field, counts map[string]int) string {
	best := fields[0].Name
	for _, f := range fields[1:] {
		if counts[f.Name] > counts[best] {
			best = f.Name
		}
	}
	return best
}

// lightestField picks the field with the fewest assigned matches,
// breaking ties by the supplied field order so balancing stays
// deterministic.
func lightestField(fields []league.Field, counts map[string]int) string {
	best := fields[0].Name
	for _, f := range fields[1:] {
		if counts[f.Name] < counts[best] {
			best = f.Name
		}
	}
	return best
}
