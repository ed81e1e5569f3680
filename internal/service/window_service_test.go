package service

import (
	"testing"
	"time"

	"github.com/pvmlabs/examgate-backend/internal/clock"
	"github.com/pvmlabs/examgate-backend/internal/config"
)

// testWindow builds a schedule: test on 2025-06-10, registration opens 7
// days earlier, 09:00-11:00 in Africa/Lagos (UTC+1, no DST).
func testWindow(t *testing.T) *config.ExamWindow {
	t.Helper()
	lagos, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return &config.ExamWindow{
		TestDate:             time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		RegistrationLeadDays: 7,
		StartHour:            9,
		EndHour:              11,
		Venue:                lagos,
	}
}

func TestRegistrationOpenAt(t *testing.T) {
	win := testWindow(t)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"day before opening", time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC), false},
		{"first day", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), true},
		{"mid window", time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC), true},
		{"test date itself", time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC), true},
		{"day after test", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RegistrationOpenAt(win, tc.at); got != tc.want {
				t.Errorf("RegistrationOpenAt(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestTestWindowOpenAt(t *testing.T) {
	win := testWindow(t)

	// 09:00 Lagos = 08:00 UTC, 11:00 Lagos = 10:00 UTC.
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"one second early", time.Date(2025, 6, 10, 7, 59, 59, 0, time.UTC), false},
		{"exact start", time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), true},
		{"mid window", time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC), true},
		{"exact end", time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC), true},
		{"one second late", time.Date(2025, 6, 10, 10, 0, 1, 0, time.UTC), false},
		{"wrong day", time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TestWindowOpenAt(win, tc.at); got != tc.want {
				t.Errorf("TestWindowOpenAt(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestWindowServiceStatus(t *testing.T) {
	win := testWindow(t)
	clk := clock.Fixed{T: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}

	status := NewWindowService(win, clk).Status()

	if !status.TestWindowOpen {
		t.Error("TestWindowOpen = false during the window")
	}
	if !status.RegistrationOpen {
		t.Error("RegistrationOpen = false on the test date")
	}
	if status.TestDate != "2025-06-10" {
		t.Errorf("TestDate = %q", status.TestDate)
	}
	if status.RegistrationFrom != "2025-06-03" {
		t.Errorf("RegistrationFrom = %q", status.RegistrationFrom)
	}
	if status.TestStartsAt != "2025-06-10T08:00:00Z" {
		t.Errorf("TestStartsAt = %q", status.TestStartsAt)
	}
}
