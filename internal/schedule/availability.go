package schedule

import "time"

// OpenStarts walks the grid for the given day and returns the ordered list
// of start times at which a booking of length slotLen could be placed.
//
// A candidate is rejected when it starts before now+guard, when it would
// run past closing, or when [candidate, candidate+slotLen) overlaps a
// non-cancelled busy interval. An empty result is a normal outcome (a
// fully booked day), never an error.
func (g Grid) OpenStarts(day time.Time, slotLen time.Duration, now time.Time, guard time.Duration, busy []Interval) []time.Time {
	if slotLen <= 0 {
		slotLen = g.SlotLength()
	}

	earliest := now.Add(guard)
	dayClose := g.DayClose(day)

	var starts []time.Time
	for i := 0; i < g.Slots(); i++ {
		candidate := g.SlotStart(day, i)
		if candidate.Before(earliest) {
			continue
		}
		end := candidate.Add(slotLen)
		if end.After(dayClose) {
			break
		}

		free := true
		for _, iv := range busy {
			if iv.Cancelled {
				continue
			}
			if Overlaps(candidate, end, iv.Start, iv.End) {
				free = false
				break
			}
		}
		if free {
			starts = append(starts, candidate)
		}
	}
	return starts
}
