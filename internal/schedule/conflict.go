package schedule

import "time"

// Interval is the conflict-relevant projection of a booking.
type Interval struct {
	BookingID  string
	ResourceID string
	StaffID    string
	ClientID   string
	Start      time.Time
	End        time.Time
	Cancelled  bool
}

// Proposal is a candidate time range to test against existing bookings.
// ExcludeID names the booking being edited so that no-op edits and pure
// moves/resizes of the same booking do not conflict with themselves.
type Proposal struct {
	ResourceID string
	StaffID    string
	ClientID   string
	Start      time.Time
	End        time.Time
	ExcludeID  string
}

// Policy extends the conflict predicate beyond the resource dimension.
// Resource exclusivity is always enforced; staff and client exclusivity
// forbid double-booking the same staff member or client across resources.
type Policy struct {
	StaffExclusive  bool
	ClientExclusive bool
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect under the
// half-open rule: touching endpoints do not overlap, so a booking ending
// at 10:00 never conflicts with one starting at 10:00.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// HasConflict is the authoritative in-memory predicate for "does this
// booking fit". Cancelled bookings and the excluded booking are ignored.
func HasConflict(p Proposal, existing []Interval, pol Policy) bool {
	for _, iv := range existing {
		if iv.Cancelled {
			continue
		}
		if p.ExcludeID != "" && iv.BookingID == p.ExcludeID {
			continue
		}
		if !Overlaps(p.Start, p.End, iv.Start, iv.End) {
			continue
		}
		if iv.ResourceID == p.ResourceID {
			return true
		}
		if pol.StaffExclusive && p.StaffID != "" && iv.StaffID == p.StaffID {
			return true
		}
		if pol.ClientExclusive && p.ClientID != "" && iv.ClientID == p.ClientID {
			return true
		}
	}
	return false
}
