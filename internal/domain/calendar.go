// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

const (
	// DateKeyLayout is the ISO 8601 date layout GitHub uses for calendar days.
	DateKeyLayout = "2006-01-02"
	// DisplayDateLayout is the date layout used in chat messages.
	DisplayDateLayout = "2006年01月02日"
)

// Location is the fixed UTC+9 zone all civil dates are computed in,
// regardless of the host's local timezone.
var Location = time.FixedZone("UTC+9", 9*60*60)

// CivilDate returns midnight of t's calendar date in Location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.In(Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

// Today returns the civil date of now.
func Today(now time.Time) time.Time {
	return CivilDate(now)
}

// Yesterday returns the civil date immediately preceding Today(now).
func Yesterday(now time.Time) time.Time {
	return CivilDate(now).AddDate(0, 0, -1)
}

// DateKey formats day as a calendar key.
func DateKey(day time.Time) string {
	return day.In(Location).Format(DateKeyLayout)
}

// DisplayDate formats day for human-readable messages.
func DisplayDate(day time.Time) string {
	return day.In(Location).Format(DisplayDateLayout)
}

// Calendar maps an ISO date (UTC+9 civil date) to its contribution count.
// It is rebuilt from every API response and never cached.
type Calendar map[string]int

// CountOn returns the contribution count for day. Days absent from the
// calendar count as zero.
func (c Calendar) CountOn(day time.Time) int {
	return c[DateKey(day)]
}

// StreakEndingOn counts consecutive days with at least one contribution,
// walking backward from day and stopping at the first day without any.
func (c Calendar) StreakEndingOn(day time.Time) int {
	return c.WalkStreak(day, nil)
}

// WalkStreak is StreakEndingOn with a visitor. visit, when non-nil, is called
// for every day examined in walk order, including the day that ends the streak.
func (c Calendar) WalkStreak(day time.Time, visit func(day time.Time, count int)) int {
	streak := 0
	for cursor := CivilDate(day); ; cursor = cursor.AddDate(0, 0, -1) {
		count := c.CountOn(cursor)
		if visit != nil {
			visit(cursor, count)
		}
		if count <= 0 {
			return streak
		}
		streak++
	}
}
