package config

import (
	"testing"
	"time"
)

func validWindowConfig() *Config {
	return &Config{
		TestDate:             "2025-06-10",
		RegistrationLeadDays: 7,
		TestStartTime:        "09:00",
		TestEndTime:          "11:00",
		VenueTimeZone:        "Africa/Lagos",
	}
}

func TestParseExamWindow(t *testing.T) {
	win, err := ParseExamWindow(validWindowConfig())
	if err != nil {
		t.Fatalf("ParseExamWindow: %v", err)
	}

	if got := win.TestDate; !got.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("TestDate = %v", got)
	}
	if got := win.RegistrationOpens(); !got.Equal(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("RegistrationOpens = %v", got)
	}

	// Lagos is UTC+1 year round.
	start, end := win.TestBounds()
	if !start.Equal(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 08:00 UTC", start)
	}
	if !end.Equal(time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want 10:00 UTC", end)
	}
}

func TestParseExamWindowRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing date", func(c *Config) { c.TestDate = "" }},
		{"malformed date", func(c *Config) { c.TestDate = "10/06/2025" }},
		{"malformed start time", func(c *Config) { c.TestStartTime = "9am" }},
		{"malformed end time", func(c *Config) { c.TestEndTime = "25:00" }},
		{"unknown timezone", func(c *Config) { c.VenueTimeZone = "Mars/Olympus" }},
		{"end before start", func(c *Config) { c.TestStartTime = "11:00"; c.TestEndTime = "09:00" }},
		{"negative lead days", func(c *Config) { c.RegistrationLeadDays = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validWindowConfig()
			tc.mutate(cfg)
			if _, err := ParseExamWindow(cfg); err == nil {
				t.Error("ParseExamWindow accepted invalid config")
			}
		})
	}
}
