package services

import "time"

// monthWindowStart returns the start of the trailing window covering the
// current calendar month and the previous months of it: 00:00 UTC on the
// first day of the month `months` calendar months before now. Anchoring to
// the first of the month keeps the boundary stable regardless of the
// current day-of-month (subtracting months from e.g. the 31st would
// otherwise roll over into the wrong month).
func monthWindowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, -months, 0)
}

// weekWindowStart returns the instant exactly seven days before now.
func weekWindowStart(now time.Time) time.Time {
	return now.UTC().Add(-7 * 24 * time.Hour)
}
