package services

import "time"

// startOfDay truncates a timestamp to local midnight. Membership dates
// are day-granular: all active/expiry comparisons go through this.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// today returns local midnight of the current day
func today() time.Time {
	return startOfDay(time.Now())
}
