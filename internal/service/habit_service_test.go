package service

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"
)

func createHabit(t *testing.T, serverURL, token, name string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, serverURL+"/api/habits", token, map[string]string{
		"name": name,
	})
	if status != http.StatusCreated {
		t.Fatalf("create habit returned %d, want %d", status, http.StatusCreated)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("create habit returned empty id")
	}
	return id
}

func TestHabitAuth(t *testing.T) {
	server, _ := setupTestServer(t)

	t.Run("missing token returns 401", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, server.URL+"/api/habits", "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", status, http.StatusUnauthorized)
		}
	})

	t.Run("invalid token returns 403", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, server.URL+"/api/habits", "not-a-real-token", nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want %d", status, http.StatusForbidden)
		}
	})
}

func TestHabitCRUD(t *testing.T) {
	server, _ := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "Carol", "carol@example.com")

	t.Run("create initializes streaks and start date", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, server.URL+"/api/habits", token, map[string]string{
			"name":        "Read",
			"description": "20 pages a day",
		})

		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		if body["name"] != "Read" || body["description"] != "20 pages a day" {
			t.Errorf("unexpected habit: %v", body)
		}
		if body["current_streak"] != float64(0) || body["longest_streak"] != float64(0) {
			t.Errorf("expected zero streaks, got %v / %v", body["current_streak"], body["longest_streak"])
		}
		if body["start_date"] == "" {
			t.Error("expected start_date to be set")
		}
	})

	t.Run("create without name returns 400", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/habits", token, map[string]string{
			"description": "no name",
		})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("list returns owned habits with check-in dates", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/habits", nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("update changes name and description", func(t *testing.T) {
		id := createHabit(t, server.URL, token, "Jog")

		status, body := doJSON(t, http.MethodPut, server.URL+"/api/habits/"+id, token, map[string]string{
			"name":        "Jog 5k",
			"description": "before breakfast",
		})

		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["name"] != "Jog 5k" || body["description"] != "before breakfast" {
			t.Errorf("update not applied: %v", body)
		}
	})

	t.Run("update of unknown habit returns 404", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPut, server.URL+"/api/habits/no-such-id", token, map[string]string{
			"name": "Ghost",
		})
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("delete removes habit", func(t *testing.T) {
		id := createHabit(t, server.URL, token, "Nap")

		status, body := doJSON(t, http.MethodDelete, server.URL+"/api/habits/"+id, token, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["message"] != "Habit deleted successfully" {
			t.Errorf("message = %v", body["message"])
		}

		status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/habits/"+id, token, nil)
		if status != http.StatusNotFound {
			t.Errorf("second delete status = %d, want %d", status, http.StatusNotFound)
		}
	})
}

func TestHabitOwnership(t *testing.T) {
	server, _ := setupTestServer(t)
	ownerToken := registerAndLogin(t, server.URL, "Owner", "owner@example.com")
	otherToken := registerAndLogin(t, server.URL, "Other", "other@example.com")

	habitID := createHabit(t, server.URL, ownerToken, "Private habit")

	// A foreign habit must be indistinguishable from a missing one.
	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"update", http.MethodPut, "/api/habits/" + habitID, map[string]string{"name": "Stolen"}},
		{"delete", http.MethodDelete, "/api/habits/" + habitID, nil},
		{"check-in", http.MethodPost, "/api/habits/" + habitID + "/checkin", nil},
		{"list check-ins", http.MethodGet, "/api/habits/" + habitID + "/checkin", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name+" by non-owner returns 404", func(t *testing.T) {
			status, _ := doJSON(t, tc.method, server.URL+tc.path, otherToken, tc.body)
			if status != http.StatusNotFound {
				t.Errorf("status = %d, want %d", status, http.StatusNotFound)
			}
		})
	}
}

func TestCheckIn(t *testing.T) {
	server, habitSvc := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "Dana", "dana@example.com")
	habitID := createHabit(t, server.URL, token, "Practice guitar")

	day := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	habitSvc.now = func() time.Time { return day }

	checkIn := func(t *testing.T) (int, map[string]any) {
		t.Helper()
		return doJSON(t, http.MethodPost, server.URL+"/api/habits/"+habitID+"/checkin", token, nil)
	}

	t.Run("first check-in starts streak", func(t *testing.T) {
		status, body := checkIn(t)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["current_streak"] != float64(1) || body["longest_streak"] != float64(1) {
			t.Errorf("streaks = %v / %v, want 1 / 1", body["current_streak"], body["longest_streak"])
		}
	})

	t.Run("same-day check-in is idempotent", func(t *testing.T) {
		status, body := checkIn(t)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["message"] != "Already checked in today" {
			t.Errorf("message = %v, want 'Already checked in today'", body["message"])
		}
		if _, present := body["current_streak"]; present {
			t.Error("duplicate check-in should not report streaks")
		}
	})

	t.Run("consecutive day increments streak", func(t *testing.T) {
		day = day.AddDate(0, 0, 1)
		status, body := checkIn(t)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["current_streak"] != float64(2) || body["longest_streak"] != float64(2) {
			t.Errorf("streaks = %v / %v, want 2 / 2", body["current_streak"], body["longest_streak"])
		}
	})

	t.Run("gap resets current but keeps longest", func(t *testing.T) {
		day = day.AddDate(0, 0, 2) // skip a day
		status, body := checkIn(t)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if body["current_streak"] != float64(1) || body["longest_streak"] != float64(2) {
			t.Errorf("streaks = %v / %v, want 1 / 2", body["current_streak"], body["longest_streak"])
		}
	})

	t.Run("check-in history lists all dates ascending", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, server.URL+"/api/habits/"+habitID+"/checkin", token, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
	})

	t.Run("check-in on unknown habit returns 404", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/habits/no-such-id/checkin", token, nil)
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want %d", status, http.StatusNotFound)
		}
	})
}

func TestConcurrentCheckIn(t *testing.T) {
	server, habitSvc := setupTestServer(t)
	token := registerAndLogin(t, server.URL, "Eve", "eve@example.com")
	habitID := createHabit(t, server.URL, token, "Hydrate")

	day := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	habitSvc.now = func() time.Time { return day }

	const attempts = 4
	results := make(chan string, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, server.URL+"/api/habits/"+habitID+"/checkin", nil)
			if err != nil {
				t.Errorf("failed to build request: %v", err)
				results <- ""
				return
			}
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Errorf("request failed: %v", err)
				results <- ""
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode response: %v", err)
				results <- ""
				return
			}
			msg, _ := body["message"].(string)
			results <- msg
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for msg := range results {
		switch msg {
		case "Check-in successful":
			accepted++
		case "Already checked in today":
		default:
			t.Errorf("unexpected message: %q", msg)
		}
	}
	if accepted != 1 {
		t.Errorf("accepted check-ins = %d, want exactly 1", accepted)
	}

	// The stored state must reflect a single applied check-in.
	status, body := doJSON(t, http.MethodPost, server.URL+"/api/habits/"+habitID+"/checkin", token, nil)
	if status != http.StatusOK || body["message"] != "Already checked in today" {
		t.Errorf("follow-up check-in = (%d, %v), want idempotent no-op", status, body["message"])
	}
}
