package broker

import (
	"time"
)

// Calendar decides whether a market is open at a given instant.
type Calendar interface {
	IsOpen(at time.Time) bool
}

// NYSECalendar approximates the New York Stock Exchange regular session:
// Monday through Friday, 09:30 to 16:00 America/New_York. Exchange holidays
// are not modeled; the -force flag exists for that.
type NYSECalendar struct{}

// nyLocation is resolved once; the tzdata is part of the platform.
var nyLocation = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsOpen reports whether the regular NYSE session is in progress at the
// given instant. The session open (09:30:00) is inclusive, the close
// (16:00:00) exclusive.
func (NYSECalendar) IsOpen(at time.Time) bool {
	ny := at.In(nyLocation)
	switch ny.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := ny.Hour()*60 + ny.Minute()
	return minutes >= 9*60+30 && minutes < 16*60
}

// AlwaysOpen is a Calendar that never gates trading; used with -force and in
// tests.
type AlwaysOpen struct{}

// IsOpen always returns true.
func (AlwaysOpen) IsOpen(time.Time) bool { return true }
