package model

import "github.com/google/uuid"

// Answer is one graded answer row, captured at scoring time.
// CorrectOption is recorded as it stood when the attempt was scored,
// so later question edits never change past results.
type Answer struct {
	ID             uuid.UUID `json:"id"`
	AttemptID      uuid.UUID `json:"attempt_id"`
	QuestionID     int       `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	CorrectOption  string    `json:"correct_option"`
	IsCorrect      bool      `json:"is_correct"`
}
