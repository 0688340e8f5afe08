// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/habitual/internal/models"
)

var (
	// ErrNotFound is returned when a habit does not exist or is not owned
	// by the requesting user. The two cases are deliberately
	// indistinguishable so habit IDs never leak across users.
	ErrNotFound = errors.New("habit not found")

	// ErrConflict is returned when an insert violates a uniqueness
	// constraint, such as registering an email twice.
	ErrConflict = errors.New("record already exists")

	// ErrDuplicateCheckIn is returned by RecordCheckIn when a check-in for
	// the same habit and date already exists. It makes a concurrent
	// same-day check-in fail safely instead of double-counting.
	ErrDuplicateCheckIn = errors.New("already checked in on this date")
)

// Store defines the interface for habit tracker storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user and populates ID and CreatedAt.
	// Returns ErrConflict if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) when no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateHabit persists a new habit and populates ID, StartDate and
	// CreatedAt. Streak counters start at zero.
	CreateHabit(ctx context.Context, habit *models.Habit) error

	// GetHabit retrieves a habit by ID, scoped to the owning user.
	// Returns ErrNotFound when no such habit is owned by userID.
	GetHabit(ctx context.Context, userID, habitID string) (*models.Habit, error)

	// UpdateHabit updates a habit's name and description, scoped to the
	// owning user. Returns ErrNotFound when no such habit is owned by
	// habit.UserID.
	UpdateHabit(ctx context.Context, habit *models.Habit) error

	// DeleteHabit removes a habit and its check-ins, scoped to the owning
	// user. Returns ErrNotFound when no such habit is owned by userID.
	DeleteHabit(ctx context.Context, userID, habitID string) error

	// ListHabits returns all habits owned by userID, each with its
	// check-in dates embedded in ascending order.
	ListHabits(ctx context.Context, userID string) ([]*models.Habit, error)

	// ListCheckIns returns a habit's check-in dates in ascending order.
	// An empty slice is a valid result, distinct from ErrNotFound.
	ListCheckIns(ctx context.Context, userID, habitID string) ([]string, error)

	// LastCheckIn returns the most recent check-in date for a habit, or
	// ok=false when the habit has never been checked in.
	LastCheckIn(ctx context.Context, habitID string) (date string, ok bool, err error)

	// HasCheckIn reports whether a check-in exists for the habit on the
	// given date.
	HasCheckIn(ctx context.Context, habitID, date string) (bool, error)

	// RecordCheckIn inserts a check-in for the given date and applies the
	// new streak counters in a single transaction: either both land or
	// neither does. Returns ErrDuplicateCheckIn when a check-in for
	// (habitID, date) already exists, leaving the counters untouched.
	RecordCheckIn(ctx context.Context, habitID, date string, currentStreak, longestStreak int) error

	// Close releases any resources held by the store.
	Close() error
}
