package broker

import (
	"testing"
	"time"
)

func TestNYSECalendar(t *testing.T) {
	ny := nyLocation
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"wednesday noon", time.Date(2025, time.June, 4, 12, 0, 0, 0, ny), true},
		{"session open is inclusive", time.Date(2025, time.June, 4, 9, 30, 0, 0, ny), true},
		{"just before open", time.Date(2025, time.June, 4, 9, 29, 0, 0, ny), false},
		{"session close is exclusive", time.Date(2025, time.June, 4, 16, 0, 0, 0, ny), false},
		{"last open minute", time.Date(2025, time.June, 4, 15, 59, 0, 0, ny), true},
		{"saturday", time.Date(2025, time.June, 7, 12, 0, 0, 0, ny), false},
		{"sunday", time.Date(2025, time.June, 8, 12, 0, 0, 0, ny), false},
		// 16:00 UTC on a weekday is 12:00 in New York (EDT).
		{"utc instant converted", time.Date(2025, time.June, 4, 16, 0, 0, 0, time.UTC), true},
		// 02:00 UTC Saturday is still Friday 22:00 in New York, after close.
		{"utc evening after close", time.Date(2025, time.June, 7, 2, 0, 0, 0, time.UTC), false},
	}

	var cal NYSECalendar
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.IsOpen(tc.at); got != tc.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestAlwaysOpen(t *testing.T) {
	if !(AlwaysOpen{}).IsOpen(time.Date(2025, time.June, 8, 3, 0, 0, 0, time.UTC)) {
		t.Error("AlwaysOpen must always be open")
	}
}
