package schedule

import "time"

// Grid is the single source of truth for slot arithmetic. A day is divided
// into fixed-width slots between OpenHour and CloseHour. CloseHour is an
// exclusive upper bound and may exceed 24 to express opening hours that run
// past midnight (e.g. 28 means open until 4am the next day).
type Grid struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// Slots returns the number of slots in one day.
func (g Grid) Slots() int {
	return (g.CloseHour - g.OpenHour) * 60 / g.SlotMinutes
}

// DayOpen returns the opening timestamp for the day containing ts.
func (g Grid) DayOpen(day time.Time) time.Time {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(g.OpenHour) * time.Hour)
}

// DayClose returns the closing timestamp for the day containing ts.
// For grids open past midnight this falls on the next calendar day.
func (g Grid) DayClose(day time.Time) time.Time {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(g.CloseHour) * time.Hour)
}

// SlotStart converts a slot index to a timestamp on the given day. The
// index is clamped into [0, Slots()); there is no other bounds checking.
func (g Grid) SlotStart(day time.Time, index int) time.Time {
	if index < 0 {
		index = 0
	}
	if max := g.Slots() - 1; index > max {
		index = max
	}
	return g.DayOpen(day).Add(time.Duration(index*g.SlotMinutes) * time.Minute)
}

// SlotAt is the inverse of SlotStart: it converts a timestamp to a
// fractional slot offset on the given day, clamped into [0, Slots()].
// Fractional results are expected; bookings need not start on a boundary.
func (g Grid) SlotAt(day, ts time.Time) float64 {
	offset := ts.Sub(g.DayOpen(day)).Minutes() / float64(g.SlotMinutes)
	if offset < 0 {
		return 0
	}
	if max := float64(g.Slots()); offset > max {
		return max
	}
	return offset
}

// Snap rounds a minute offset to the nearest slot boundary. It exists for
// pointer-driven interactions only; validation always works on raw
// timestamps.
func (g Grid) Snap(minutes int) int {
	half := g.SlotMinutes / 2
	if minutes < 0 {
		return -((-minutes + half) / g.SlotMinutes) * g.SlotMinutes
	}
	return (minutes + half) / g.SlotMinutes * g.SlotMinutes
}

// ResizeDelta converts a continuous resize delta in minutes to a whole
// slot count. Growth rounds the added slots down and shrinking rounds
// them up, which is truncation toward zero in both directions.
func (g Grid) ResizeDelta(deltaMinutes int) int {
	return deltaMinutes / g.SlotMinutes
}

// SlotLength returns the width of one slot.
func (g Grid) SlotLength() time.Duration {
	return time.Duration(g.SlotMinutes) * time.Minute
}

// SlotRange returns the slot indices covered by [start, end) on the given
// day, clamped to the grid. Used for keying per-slot holds.
func (g Grid) SlotRange(day, start, end time.Time) []int {
	if !end.After(start) {
		return nil
	}
	first := int(g.SlotAt(day, start))
	// The end offset is exclusive: a booking ending exactly on a boundary
	// does not cover the following slot.
	last := g.SlotAt(day, end)
	lastIdx := int(last)
	if last == float64(lastIdx) {
		lastIdx--
	}
	var slots []int
	for i := first; i <= lastIdx && i < g.Slots(); i++ {
		slots = append(slots, i)
	}
	return slots
}
