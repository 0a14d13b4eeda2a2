package types

import "time"

// StartOfDay truncates t to midnight UTC. All day-resolution expiry
// arithmetic in the renewal engine operates on start-of-day values so that
// wall-clock time within a day never changes the outcome.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days to t. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return AddClampedDate(t, 0, 0, n)
}

// AddMonths adds n calendar months to t, preserving the day-of-month where
// valid and clamping to the last day of the target month otherwise
// (Jan 31 + 1 month = Feb 28/29, never Mar 2/3). n may be negative: a
// correction of -1 month walks the expiry back symmetrically.
func AddMonths(t time.Time, n int) time.Time {
	return AddClampedDate(t, 0, n, 0)
}

// DaysBetween returns the whole number of days from `from` to `to`, both
// truncated to start of day. The result is negative when `to` precedes
// `from`.
func DaysBetween(from, to time.Time) int {
	from = StartOfDay(from)
	to = StartOfDay(to)
	return int(to.Sub(from).Hours() / 24)
}

// AddClampedDate adds years, months and days to t. Unlike time.AddDate it
// clamps the day-of-month to the last valid day of the target month instead
// of normalizing overflow into the following month.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// If we move beyond December (or before January) adjust the year,
	// for example adding 2 months to November lands on January next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d
	if newD > lastDay {
		newD = lastDay
	}

	result := time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
	if days != 0 {
		result = result.AddDate(0, 0, days)
	}
	return result
}

// MaxTime returns the later of a and b.
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
