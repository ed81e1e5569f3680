package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates exam attempt states.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusSubmitted  AttemptStatus = "SUBMITTED"
)

// Attempt represents a candidate's single exam-taking session.
// FinishedAt is nil while the attempt is in progress; once set the
// attempt is terminal and never mutated again.
type Attempt struct {
	ID               uuid.UUID          `json:"id"`
	CandidateID      int                `json:"candidate_id"`
	StartedAt        time.Time          `json:"started_at"`
	FinishedAt       *time.Time         `json:"finished_at,omitempty"`
	Score            int                `json:"score"`
	SectionBreakdown map[Section]string `json:"section_breakdown,omitempty"`
	SubmittedLocal   string             `json:"submitted_local,omitempty"` // venue-local display time
}

// Status derives the attempt state from the end timestamp.
func (a *Attempt) Status() AttemptStatus {
	if a.FinishedAt != nil {
		return AttemptStatusSubmitted
	}
	return AttemptStatusInProgress
}

// SubmitAttemptRequest is the payload for submitting answers.
// Keys are question IDs, values the selected option letter.
type SubmitAttemptRequest struct {
	Answers map[int]string `json:"answers" binding:"required,min=1"`
}
