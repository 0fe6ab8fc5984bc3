package schedule

import (
	"reflect"
	"testing"
	"time"
)

var testGrid = Grid{OpenHour: 9, CloseHour: 22, SlotMinutes: 30}

func TestSlotStart(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		index int
		want  time.Time
	}{
		{"first slot", 0, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{"third slot", 2, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		{"negative index clamps to open", -5, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		{"index past close clamps to last slot", 999, time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testGrid.SlotStart(day, tt.index); !got.Equal(tt.want) {
				t.Errorf("SlotStart(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}
}

func TestSlotStartPastMidnight(t *testing.T) {
	// A grid closing at 28 runs until 4am the next day.
	g := Grid{OpenHour: 10, CloseHour: 28, SlotMinutes: 30}
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	last := g.SlotStart(day, g.Slots()-1)
	want := time.Date(2026, 3, 15, 3, 30, 0, 0, time.UTC)
	if !last.Equal(want) {
		t.Errorf("last slot = %v, want %v", last, want)
	}
	if close := g.DayClose(day); !close.Equal(time.Date(2026, 3, 15, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("DayClose = %v", close)
	}
}

func TestSlotAt(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want float64
	}{
		{"opening time", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), 0},
		{"on boundary", time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), 3},
		{"fractional between boundaries", time.Date(2026, 3, 14, 9, 45, 0, 0, time.UTC), 1.5},
		{"before open clamps to zero", time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC), 0},
		{"after close clamps to slot count", time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testGrid.SlotAt(day, tt.ts); got != tt.want {
				t.Errorf("SlotAt(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{14, 0},
		{15, 30},
		{44, 30},
		{46, 60},
		{-14, 0},
		{-16, -30},
	}

	for _, tt := range tests {
		if got := testGrid.Snap(tt.minutes); got != tt.want {
			t.Errorf("Snap(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestResizeDelta(t *testing.T) {
	// Growing rounds the added slots down, shrinking rounds up:
	// truncation toward zero in both directions.
	tests := []struct {
		deltaMinutes int
		want         int
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{59, 1},
		{90, 3},
		{-29, 0},
		{-30, -1},
		{-59, -1},
	}

	for _, tt := range tests {
		if got := testGrid.ResizeDelta(tt.deltaMinutes); got != tt.want {
			t.Errorf("ResizeDelta(%d) = %d, want %d", tt.deltaMinutes, got, tt.want)
		}
	}
}

func TestSlotRange(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []int
	}{
		{"one slot", at(9, 0), at(9, 30), []int{0}},
		{"two slots", at(10, 0), at(11, 0), []int{2, 3}},
		{"end on boundary excludes next slot", at(9, 0), at(10, 0), []int{0, 1}},
		{"off-boundary end still covers its slot", at(9, 0), at(9, 40), []int{0, 1}},
		{"empty range", at(10, 0), at(10, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testGrid.SlotRange(day, tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SlotRange(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
