package helper

import (
	"time"
	_ "time/tzdata"
)

const DateLayout = "2006-01-02"

// DockClock - Calendar for "same day" rules (reservations, sales, daily
// zarpe list). The day boundary is the dock's local midnight, not UTC.
type DockClock struct {
	Location *time.Location
	now      func() time.Time
}

func NewDockClock(tz string) (*DockClock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &DockClock{Location: loc, now: time.Now}, nil
}

// FixedClock - Clock frozen at t, for tests and replays.
func FixedClock(t time.Time, loc *time.Location) *DockClock {
	return &DockClock{Location: loc, now: func() time.Time { return t }}
}

func (c *DockClock) Now() time.Time {
	return c.now().In(c.Location)
}

// Today - Current dock date as YYYY-MM-DD.
func (c *DockClock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *DockClock) DateOf(t time.Time) string {
	return t.In(c.Location).Format(DateLayout)
}

// SameDay reports whether t falls on today's dock date.
func (c *DockClock) SameDay(t time.Time) bool {
	return c.DateOf(t) == c.Today()
}
