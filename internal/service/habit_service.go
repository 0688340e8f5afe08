package service

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/habitual/internal/middleware"
	"github.com/mmynk/habitual/internal/models"
	"github.com/mmynk/habitual/internal/storage"
	"github.com/mmynk/habitual/internal/streak"
	"github.com/mmynk/habitual/pkg/metrics"
)

// HabitService handles habit CRUD and check-in requests. All operations are
// scoped to the authenticated user; a habit owned by someone else is
// indistinguishable from a missing one.
type HabitService struct {
	store  storage.Store
	logger *slog.Logger

	// now supplies the current time; overridable in tests to drive
	// multi-day check-in sequences.
	now func() time.Time
}

// NewHabitService creates a new habit service backed by the given store.
func NewHabitService(store storage.Store, logger *slog.Logger) *HabitService {
	return &HabitService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

type habitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type checkInResponse struct {
	Message       string `json:"message"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// identity extracts the authenticated identity, responding 401 when absent.
// Requests reach the habit handlers only through RequireAuth, so a missing
// identity means a wiring bug rather than a client error.
func (s *HabitService) identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No token provided")
	}
	return id, ok
}

// List handles GET /api/habits.
func (s *HabitService) List(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	habits, err := s.store.ListHabits(r.Context(), id.UserID)
	if err != nil {
		s.logger.Error("failed to list habits", "user_id", id.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch habits")
		return
	}

	respondJSON(w, http.StatusOK, habits)
}

// Create handles POST /api/habits.
func (s *HabitService) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	habit := &models.Habit{
		UserID:      id.UserID,
		Name:        req.Name,
		Description: req.Description,
		CheckIns:    []string{},
	}
	if err := s.store.CreateHabit(r.Context(), habit); err != nil {
		s.logger.Error("failed to create habit", "user_id", id.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create habit")
		return
	}

	s.logger.Info("habit created", "user_id", id.UserID, "habit_id", habit.ID)
	respondJSON(w, http.StatusCreated, habit)
}

// Update handles PUT /api/habits/{id}.
func (s *HabitService) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	habit := &models.Habit{
		ID:          chi.URLParam(r, "id"),
		UserID:      id.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.store.UpdateHabit(r.Context(), habit); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		s.logger.Error("failed to update habit", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update habit")
		return
	}

	updated, err := s.store.GetHabit(r.Context(), id.UserID, habit.ID)
	if err != nil {
		s.logger.Error("failed to fetch updated habit", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update habit")
		return
	}
	dates, err := s.store.ListCheckIns(r.Context(), id.UserID, habit.ID)
	if err != nil {
		s.logger.Error("failed to fetch check-ins for updated habit", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update habit")
		return
	}
	updated.CheckIns = dates

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/habits/{id}.
func (s *HabitService) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	habitID := chi.URLParam(r, "id")
	if err := s.store.DeleteHabit(r.Context(), id.UserID, habitID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		s.logger.Error("failed to delete habit", "habit_id", habitID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete habit")
		return
	}

	s.logger.Info("habit deleted", "user_id", id.UserID, "habit_id", habitID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

// CheckIn handles POST /api/habits/{id}/checkin. Checking in twice on the
// same calendar date is an idempotent no-op. The streak arithmetic and the
// check-in insert are applied by the store in one transaction, so two
// concurrent requests for the same date record exactly one check-in and
// one streak update.
func (s *HabitService) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	habit, err := s.store.GetHabit(ctx, id.UserID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		s.logger.Error("failed to load habit for check-in", "error", err)
		respondError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	today := s.now().UTC()
	todayStr := today.Format(time.DateOnly)

	checked, err := s.store.HasCheckIn(ctx, habit.ID, todayStr)
	if err != nil {
		s.logger.Error("failed to check existing check-in", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}
	if checked {
		metrics.CountCheckIn("duplicate")
		respondJSON(w, http.StatusOK, map[string]string{"message": "Already checked in today"})
		return
	}

	var last *time.Time
	if lastStr, ok, err := s.store.LastCheckIn(ctx, habit.ID); err != nil {
		s.logger.Error("failed to load last check-in", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Check-in failed")
		return
	} else if ok {
		d, err := time.Parse(time.DateOnly, lastStr)
		if err != nil {
			s.logger.Error("malformed check-in date in store", "habit_id", habit.ID, "date", lastStr)
			respondError(w, http.StatusInternalServerError, "Check-in failed")
			return
		}
		last = &d
	}

	result := streak.Advance(habit.CurrentStreak, habit.LongestStreak, last, today)

	if err := s.store.RecordCheckIn(ctx, habit.ID, todayStr, result.Current, result.Longest); err != nil {
		if errors.Is(err, storage.ErrDuplicateCheckIn) {
			// Lost the race against a concurrent check-in for the same date;
			// that request already applied the streak update.
			metrics.CountCheckIn("duplicate")
			respondJSON(w, http.StatusOK, map[string]string{"message": "Already checked in today"})
			return
		}
		metrics.CountCheckIn("error")
		s.logger.Error("failed to record check-in", "habit_id", habit.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Check-in failed")
		return
	}

	metrics.CountCheckIn("accepted")
	s.logger.Info("check-in recorded",
		"habit_id", habit.ID,
		"date", todayStr,
		"current_streak", result.Current,
		"longest_streak", result.Longest,
	)
	respondJSON(w, http.StatusOK, checkInResponse{
		Message:       "Check-in successful",
		CurrentStreak: result.Current,
		LongestStreak: result.Longest,
	})
}

// ListCheckIns handles GET /api/habits/{id}/checkin.
func (s *HabitService) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	id, ok := s.identity(w, r)
	if !ok {
		return
	}

	habitID := chi.URLParam(r, "id")
	dates, err := s.store.ListCheckIns(r.Context(), id.UserID, habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Habit not found")
			return
		}
		s.logger.Error("failed to list check-ins", "habit_id", habitID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch check-ins")
		return
	}

	respondJSON(w, http.StatusOK, dates)
}
