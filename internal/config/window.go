package config

import (
	"fmt"
	"time"
)

// ExamWindow is the validated exam schedule. It is parsed once at startup;
// a malformed schedule must prevent the service from serving requests, so
// the time-window gate never has to guess at "open" or "closed".
type ExamWindow struct {
	// TestDate is the exam calendar date, at UTC midnight.
	TestDate time.Time
	// RegistrationLeadDays is how many days before TestDate registration opens.
	RegistrationLeadDays int
	// StartHour/StartMinute and EndHour/EndMinute are the test window
	// bounds as venue-local time of day.
	StartHour, StartMinute int
	EndHour, EndMinute     int
	// Venue is the IANA zone the start/end times are interpreted in.
	Venue *time.Location
}

// ParseExamWindow validates the raw window settings from cfg.
// Any unparseable date, time or timezone is a startup error.
func ParseExamWindow(cfg *Config) (*ExamWindow, error) {
	if cfg.TestDate == "" {
		return nil, fmt.Errorf("TEST_DATE is not set")
	}

	date, err := time.ParseInLocation("2006-01-02", cfg.TestDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse TEST_DATE %q: %w", cfg.TestDate, err)
	}

	if cfg.RegistrationLeadDays < 0 {
		return nil, fmt.Errorf("REGISTRATION_LEAD_DAYS must be >= 0, got %d", cfg.RegistrationLeadDays)
	}

	startH, startM, err := parseTimeOfDay(cfg.TestStartTime)
	if err != nil {
		return nil, fmt.Errorf("parse TEST_START_TIME %q: %w", cfg.TestStartTime, err)
	}

	endH, endM, err := parseTimeOfDay(cfg.TestEndTime)
	if err != nil {
		return nil, fmt.Errorf("parse TEST_END_TIME %q: %w", cfg.TestEndTime, err)
	}

	venue, err := time.LoadLocation(cfg.VenueTimeZone)
	if err != nil {
		return nil, fmt.Errorf("load VENUE_TIMEZONE %q: %w", cfg.VenueTimeZone, err)
	}

	win := &ExamWindow{
		TestDate:             date,
		RegistrationLeadDays: cfg.RegistrationLeadDays,
		StartHour:            startH,
		StartMinute:          startM,
		EndHour:              endH,
		EndMinute:            endM,
		Venue:                venue,
	}

	start, end := win.TestBounds()
	if end.Before(start) {
		return nil, fmt.Errorf("TEST_END_TIME %q is before TEST_START_TIME %q", cfg.TestEndTime, cfg.TestStartTime)
	}

	return win, nil
}

// TestBounds returns the test window as UTC instants: the test date
// composed with the start/end times of day in the venue zone.
func (w *ExamWindow) TestBounds() (start, end time.Time) {
	y, m, d := w.TestDate.Date()
	start = time.Date(y, m, d, w.StartHour, w.StartMinute, 0, 0, w.Venue).UTC()
	end = time.Date(y, m, d, w.EndHour, w.EndMinute, 0, 0, w.Venue).UTC()
	return start, end
}

// RegistrationOpens returns the first calendar date (UTC midnight)
// registration is open on.
func (w *ExamWindow) RegistrationOpens() time.Time {
	return w.TestDate.AddDate(0, 0, -w.RegistrationLeadDays)
}

func parseTimeOfDay(raw string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
