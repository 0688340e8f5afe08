package streak

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		longest     int
		last        *time.Time
		today       time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first check-in starts streak at 1",
			current:     0,
			longest:     0,
			last:        nil,
			today:       date("2025-03-10"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "consecutive day increments streak",
			current:     3,
			longest:     5,
			last:        datePtr("2025-03-09"),
			today:       date("2025-03-10"),
			wantCurrent: 4,
			wantLongest: 5,
		},
		{
			name:        "consecutive day extends longest streak",
			current:     5,
			longest:     5,
			last:        datePtr("2025-03-09"),
			today:       date("2025-03-10"),
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			name:        "two-day gap resets streak to 1",
			current:     7,
			longest:     7,
			last:        datePtr("2025-03-07"),
			today:       date("2025-03-10"),
			wantCurrent: 1,
			wantLongest: 7,
		},
		{
			name:        "long gap resets streak to 1",
			current:     2,
			longest:     9,
			last:        datePtr("2024-12-01"),
			today:       date("2025-03-10"),
			wantCurrent: 1,
			wantLongest: 9,
		},
		{
			name:        "out-of-order check-in treated as broken streak",
			current:     4,
			longest:     4,
			last:        datePtr("2025-03-12"),
			today:       date("2025-03-10"),
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "consecutive day across month boundary",
			current:     1,
			longest:     1,
			last:        datePtr("2025-02-28"),
			today:       date("2025-03-01"),
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.current, tt.longest, tt.last, tt.today)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
			if got.Longest < got.Current {
				t.Errorf("Longest (%d) < Current (%d)", got.Longest, got.Current)
			}
		})
	}
}

func TestAdvanceSequence(t *testing.T) {
	// Day 1, day 2, skip day 3, day 4.
	days := []struct {
		today       string
		wantCurrent int
		wantLongest int
	}{
		{"2025-06-01", 1, 1},
		{"2025-06-02", 2, 2},
		{"2025-06-04", 1, 2},
	}

	current, longest := 0, 0
	var last *time.Time
	for _, d := range days {
		today := date(d.today)
		got := Advance(current, longest, last, today)
		if got.Current != d.wantCurrent || got.Longest != d.wantLongest {
			t.Fatalf("day %s: got (%d, %d), want (%d, %d)",
				d.today, got.Current, got.Longest, d.wantCurrent, d.wantLongest)
		}
		current, longest = got.Current, got.Longest
		last = &today
	}
}

func TestGapDays(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want int
	}{
		{"2025-03-09", "2025-03-10", 1},
		{"2025-03-10", "2025-03-10", 0},
		{"2025-03-01", "2025-03-10", 9},
		{"2025-03-10", "2025-03-09", -1},
		{"2024-12-31", "2025-01-01", 1},
	}

	for _, tt := range tests {
		if got := GapDays(date(tt.from), date(tt.to)); got != tt.want {
			t.Errorf("GapDays(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestGapDaysIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	if got := GapDays(from, to); got != 1 {
		t.Errorf("GapDays across midnight = %d, want 1", got)
	}
}
