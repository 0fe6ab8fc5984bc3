package schedule

import (
	"testing"
	"time"
)

func TestOpenStarts(t *testing.T) {
	g := Grid{OpenHour: 9, CloseHour: 12, SlotMinutes: 30}
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	// Well before the day so the guard never interferes unless a test
	// sets its own now.
	dayBefore := day.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		slotLen time.Duration
		now     time.Time
		guard   time.Duration
		busy    []Interval
		want    []time.Time
	}{
		{
			name:    "empty day offers every slot that fits",
			slotLen: time.Hour,
			now:     dayBefore,
			want: []time.Time{
				at(9, 0), at(9, 30), at(10, 0), at(10, 30), at(11, 0),
			},
		},
		{
			name:    "booking blocks overlapping starts only",
			slotLen: time.Hour,
			now:     dayBefore,
			busy: []Interval{
				{ResourceID: "room-a", Start: at(10, 0), End: at(11, 0)},
			},
			// 9:30 would run into 10:00; 11:00 touches and is fine.
			want: []time.Time{at(9, 0), at(11, 0)},
		},
		{
			name:    "cancelled booking frees its window",
			slotLen: time.Hour,
			now:     dayBefore,
			busy: []Interval{
				{ResourceID: "room-a", Start: at(10, 0), End: at(11, 0), Cancelled: true},
			},
			want: []time.Time{
				at(9, 0), at(9, 30), at(10, 0), at(10, 30), at(11, 0),
			},
		},
		{
			name:    "guard filters the immediate future",
			slotLen: time.Hour,
			now:     at(9, 50),
			guard:   15 * time.Minute,
			// earliest allowed start is 10:05, so 10:00 is out too.
			want: []time.Time{at(10, 30), at(11, 0)},
		},
		{
			name:    "fully booked day yields no candidates",
			slotLen: time.Hour,
			now:     dayBefore,
			busy: []Interval{
				{ResourceID: "room-a", Start: at(9, 0), End: at(12, 0)},
			},
			want: nil,
		},
		{
			name:    "zero slot length defaults to one slot",
			slotLen: 0,
			now:     dayBefore,
			busy: []Interval{
				{ResourceID: "room-a", Start: at(9, 30), End: at(11, 30)},
			},
			want: []time.Time{at(9, 0), at(11, 30)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.OpenStarts(day, tt.slotLen, tt.now, tt.guard, tt.busy)
			if len(got) != len(tt.want) {
				t.Fatalf("OpenStarts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("OpenStarts()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
