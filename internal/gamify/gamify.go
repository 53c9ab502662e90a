// Package gamify derives levels, tiers, and streaks from message counts.
// Everything here is a pure function; callers supply the reference time.
package gamify

import (
	"time"
)

// MessagesPerLevel is the number of user messages needed to advance a level.
const MessagesPerLevel = 5

// DateLayout is the calendar-date format used for engagement tracking.
const DateLayout = "2006-01-02"

// Level returns the level for a total message count. Level 1 covers the
// first MessagesPerLevel messages, so a count of zero is still level 1.
func Level(totalMessages int) int {
	if totalMessages == 0 {
		return 1
	}
	return (totalMessages-1)/MessagesPerLevel + 1
}

// Progress returns how far into the current level the count is, in
// [1, MessagesPerLevel] for any positive count and 0 for a count of zero.
func Progress(totalMessages int) int {
	if totalMessages == 0 {
		return 0
	}
	return (totalMessages-1)%MessagesPerLevel + 1
}

// StreakValid reports whether a streak recorded on lastDate is still alive
// at now: the last engagement must be today or yesterday by local calendar
// date. An empty or unparsable lastDate means no streak.
func StreakValid(lastDate string, now time.Time) bool {
	last, err := time.ParseInLocation(DateLayout, lastDate, now.Location())
	if err != nil {
		return false
	}
	today := midnight(now)
	days := int(today.Sub(midnight(last)).Hours() / 24)
	return days <= 1
}

// EngagedToday reports whether lastDate falls on the same calendar day as
// now, compared by year, month, and day only.
func EngagedToday(lastDate string, now time.Time) bool {
	last, err := time.ParseInLocation(DateLayout, lastDate, now.Location())
	if err != nil {
		return false
	}
	return last.Year() == now.Year() && last.Month() == now.Month() && last.Day() == now.Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
