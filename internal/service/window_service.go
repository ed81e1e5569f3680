package service

import (
	"time"

	"github.com/pvmlabs/examgate-backend/internal/clock"
	"github.com/pvmlabs/examgate-backend/internal/config"
)

// WindowService answers "is registration open" and "is the test window
// open" against the configured exam schedule. All decisions come from the
// injected clock, never time.Now directly.
type WindowService struct {
	win *config.ExamWindow
	clk clock.Clock
}

// NewWindowService creates a new WindowService.
func NewWindowService(win *config.ExamWindow, clk clock.Clock) *WindowService {
	return &WindowService{win: win, clk: clk}
}

// RegistrationOpenAt reports whether registration is open at instant t.
// The comparison is by UTC calendar date: open from leadDays before the
// test date through the test date itself, both ends inclusive.
func RegistrationOpenAt(win *config.ExamWindow, t time.Time) bool {
	day := truncateToDate(t.UTC())
	return !day.Before(win.RegistrationOpens()) && !day.After(win.TestDate)
}

// TestWindowOpenAt reports whether the test window is open at instant t.
// Both bounds are inclusive, so a start at exactly 09:00 venue time counts.
func TestWindowOpenAt(win *config.ExamWindow, t time.Time) bool {
	start, end := win.TestBounds()
	u := t.UTC()
	return !u.Before(start) && !u.After(end)
}

// RegistrationOpen reports whether registration is open right now.
func (s *WindowService) RegistrationOpen() bool {
	return RegistrationOpenAt(s.win, s.clk.Now())
}

// TestWindowOpen reports whether the test window is open right now.
func (s *WindowService) TestWindowOpen() bool {
	return TestWindowOpenAt(s.win, s.clk.Now())
}

// Venue returns the location venue-local display times are rendered in.
func (s *WindowService) Venue() *time.Location {
	return s.win.Venue
}

// WindowStatus is the public schedule snapshot served to the portal.
type WindowStatus struct {
	TestDate          string `json:"test_date"`
	TestStartsAt      string `json:"test_starts_at"`
	TestEndsAt        string `json:"test_ends_at"`
	RegistrationFrom  string `json:"registration_from"`
	RegistrationUntil string `json:"registration_until"`
	RegistrationOpen  bool   `json:"registration_open"`
	TestWindowOpen    bool   `json:"test_window_open"`
	ServerTime        string `json:"server_time"`
}

// Status builds the public schedule snapshot at the current instant.
func (s *WindowService) Status() WindowStatus {
	now := s.clk.Now()
	start, end := s.win.TestBounds()

	return WindowStatus{
		TestDate:          s.win.TestDate.Format("2006-01-02"),
		TestStartsAt:      start.Format(time.RFC3339),
		TestEndsAt:        end.Format(time.RFC3339),
		RegistrationFrom:  s.win.RegistrationOpens().Format("2006-01-02"),
		RegistrationUntil: s.win.TestDate.Format("2006-01-02"),
		RegistrationOpen:  RegistrationOpenAt(s.win, now),
		TestWindowOpen:    TestWindowOpenAt(s.win, now),
		ServerTime:        now.Format(time.RFC3339),
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
