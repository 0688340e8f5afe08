// Package streak implements the check-in streak arithmetic for habits.
package streak

import "time"

// Result holds the streak counters after a check-in has been applied.
type Result struct {
	Current int
	Longest int
}

// Advance computes the streak counters for a new check-in on today, given
// the habit's current counters and the date of its most recent prior
// check-in. last is nil when the habit has never been checked in.
//
// Rules:
//   - no prior check-in: the streak starts at 1
//   - prior check-in exactly one calendar day before today: the streak grows
//   - any larger gap: the streak is broken and restarts at 1
//   - a prior check-in on or after today (out-of-order or clock-skewed
//     input): treated the same as a broken streak
//
// Same-day duplicates never reach Advance; callers detect them against the
// check-in history first and skip the update entirely.
//
// The longest streak is the running maximum of the current streak, so it
// never decreases and Longest >= Current always holds in the result.
func Advance(current, longest int, last *time.Time, today time.Time) Result {
	next := 1
	if last != nil && GapDays(*last, today) == 1 {
		next = current + 1
	}
	if next > longest {
		longest = next
	}
	return Result{Current: next, Longest: longest}
}

// GapDays returns the number of whole calendar days from one date to
// another, ignoring the time of day. The result is negative when to
// precedes from.
func GapDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
