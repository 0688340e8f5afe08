package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/habitual/internal/models"
	"github.com/mmynk/habitual/internal/storage"
)

// CreateHabit persists a new habit to the database, generating its ID,
// start date and creation timestamp. Streak counters start at zero.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit *models.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if habit.CreatedAt == 0 {
		habit.CreatedAt = now.Unix()
	}
	if habit.StartDate == "" {
		habit.StartDate = now.Format(time.DateOnly)
	}

	query := `
		INSERT INTO habits (id, user_id, name, description, current_streak, longest_streak, start_date, created_at)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.StartDate,
		habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

// GetHabit retrieves a habit by ID, scoped to the owning user.
func (s *SQLiteStore) GetHabit(ctx context.Context, userID, habitID string) (*models.Habit, error) {
	query := `
		SELECT id, user_id, name, description, current_streak, longest_streak, start_date, created_at
		FROM habits
		WHERE id = ? AND user_id = ?
	`

	habit := &models.Habit{}
	err := s.db.QueryRowContext(ctx, query, habitID, userID).Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.Description,
		&habit.CurrentStreak,
		&habit.LongestStreak,
		&habit.StartDate,
		&habit.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

// UpdateHabit updates a habit's name and description, scoped to the owning user.
func (s *SQLiteStore) UpdateHabit(ctx context.Context, habit *models.Habit) error {
	query := `
		UPDATE habits
		SET name = ?, description = ?
		WHERE id = ? AND user_id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		habit.Name,
		habit.Description,
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteHabit removes a habit, scoped to the owning user. Check-ins are
// removed by the ON DELETE CASCADE on habit_checkins.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, userID, habitID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM habits WHERE id = ? AND user_id = ?",
		habitID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListHabits returns all habits owned by userID with their check-in dates
// embedded in ascending order.
func (s *SQLiteStore) ListHabits(ctx context.Context, userID string) ([]*models.Habit, error) {
	query := `
		SELECT id, user_id, name, description, current_streak, longest_streak, start_date, created_at
		FROM habits
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []*models.Habit{}
	for rows.Next() {
		habit := &models.Habit{}
		if err := rows.Scan(
			&habit.ID,
			&habit.UserID,
			&habit.Name,
			&habit.Description,
			&habit.CurrentStreak,
			&habit.LongestStreak,
			&habit.StartDate,
			&habit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	for _, habit := range habits {
		dates, err := s.checkInDates(ctx, habit.ID)
		if err != nil {
			return nil, err
		}
		habit.CheckIns = dates
	}

	return habits, nil
}
