package schedule

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching endpoints do not conflict", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(10, 30), at(11, 30), at(10, 0), at(11, 0), true},
		{"contained", at(10, 15), at(10, 45), at(10, 0), at(11, 0), true},
		{"containing", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Interval{
		{BookingID: "b1", ResourceID: "room-a", StaffID: "s1", ClientID: "c1", Start: at(10, 0), End: at(11, 0)},
		{BookingID: "b2", ResourceID: "room-b", StaffID: "s2", Start: at(10, 0), End: at(12, 0)},
		{BookingID: "b3", ResourceID: "room-a", Start: at(14, 0), End: at(15, 0), Cancelled: true},
	}

	tests := []struct {
		name string
		p    Proposal
		pol  Policy
		want bool
	}{
		{
			name: "overlap on same resource",
			p:    Proposal{ResourceID: "room-a", Start: at(10, 30), End: at(11, 30)},
			want: true,
		},
		{
			name: "touching booking on same resource is accepted",
			p:    Proposal{ResourceID: "room-a", Start: at(11, 0), End: at(12, 0)},
			want: false,
		},
		{
			name: "other resource does not conflict by default",
			p:    Proposal{ResourceID: "room-c", Start: at(10, 0), End: at(11, 0)},
			want: false,
		},
		{
			name: "cancelled booking is ignored",
			p:    Proposal{ResourceID: "room-a", Start: at(14, 0), End: at(15, 0)},
			want: false,
		},
		{
			name: "excluded booking is ignored",
			p:    Proposal{ResourceID: "room-a", Start: at(10, 0), End: at(11, 0), ExcludeID: "b1"},
			want: false,
		},
		{
			name: "staff exclusivity spans resources when enabled",
			p:    Proposal{ResourceID: "room-c", StaffID: "s2", Start: at(11, 0), End: at(11, 30)},
			pol:  Policy{StaffExclusive: true},
			want: true,
		},
		{
			name: "staff exclusivity off by default",
			p:    Proposal{ResourceID: "room-c", StaffID: "s2", Start: at(11, 0), End: at(11, 30)},
			want: false,
		},
		{
			name: "client exclusivity spans resources when enabled",
			p:    Proposal{ResourceID: "room-c", ClientID: "c1", Start: at(10, 30), End: at(11, 30)},
			pol:  Policy{ClientExclusive: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(tt.p, existing, tt.pol); got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
