package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/habitual/internal/storage"
)

// ListCheckIns returns a habit's check-in dates in ascending order, scoped
// to the owning user. An empty slice is a valid result for a habit that
// exists but has never been checked in.
func (s *SQLiteStore) ListCheckIns(ctx context.Context, userID, habitID string) ([]string, error) {
	// Ownership check first so a foreign habit is indistinguishable from a
	// missing one.
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM habits WHERE id = ? AND user_id = ?",
		habitID, userID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check habit ownership: %w", err)
	}

	return s.checkInDates(ctx, habitID)
}

// checkInDates returns all check-in dates for a habit in ascending order.
func (s *SQLiteStore) checkInDates(ctx context.Context, habitID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT checkin_date FROM habit_checkins WHERE habit_id = ? ORDER BY checkin_date ASC",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	return dates, nil
}

// LastCheckIn returns the most recent check-in date for a habit.
func (s *SQLiteStore) LastCheckIn(ctx context.Context, habitID string) (string, bool, error) {
	var date string
	err := s.db.QueryRowContext(ctx,
		"SELECT checkin_date FROM habit_checkins WHERE habit_id = ? ORDER BY checkin_date DESC LIMIT 1",
		habitID,
	).Scan(&date)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get last check-in: %w", err)
	}

	return date, true, nil
}

// HasCheckIn reports whether a check-in exists for the habit on the given date.
func (s *SQLiteStore) HasCheckIn(ctx context.Context, habitID, date string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM habit_checkins WHERE habit_id = ? AND checkin_date = ?)",
		habitID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for check-in: %w", err)
	}

	return exists, nil
}

// RecordCheckIn inserts a check-in and applies the new streak counters in a
// single transaction. The primary key on (habit_id, checkin_date) rejects a
// duplicate insert, so a concurrent same-day check-in surfaces as
// storage.ErrDuplicateCheckIn with the counters untouched.
func (s *SQLiteStore) RecordCheckIn(ctx context.Context, habitID, date string, currentStreak, longestStreak int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO habit_checkins (habit_id, checkin_date) VALUES (?, ?)",
		habitID, date,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicateCheckIn
	}
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE habits SET current_streak = ?, longest_streak = ? WHERE id = ?",
		currentStreak, longestStreak, habitID,
	)
	if err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check streak update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
