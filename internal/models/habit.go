package models

// Habit represents a habit owned by a single user, together with its
// live streak counters.
type Habit struct {
	// ID is the unique identifier for the habit (UUID format).
	ID string `json:"id"`

	// UserID is the ID of the owning user. A habit is visible and
	// mutable only to its owner.
	UserID string `json:"user_id"`

	// Name is the short display name of the habit. Required.
	Name string `json:"name"`

	// Description is optional free-form text.
	Description string `json:"description"`

	// CurrentStreak is the number of consecutive calendar days, ending at
	// the most recent check-in, with no gap day.
	CurrentStreak int `json:"current_streak"`

	// LongestStreak is the maximum CurrentStreak value ever reached.
	// Invariant: LongestStreak >= CurrentStreak after every check-in.
	LongestStreak int `json:"longest_streak"`

	// StartDate is the calendar date (YYYY-MM-DD) the habit was created.
	StartDate string `json:"start_date"`

	// CreatedAt is the Unix timestamp when the habit was created.
	CreatedAt int64 `json:"created_at"`

	// CheckIns holds the habit's check-in dates (YYYY-MM-DD) in ascending
	// order. Populated by list queries; empty for a habit never checked in.
	CheckIns []string `json:"checkins"`
}
