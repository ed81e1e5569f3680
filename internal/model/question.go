package model

import "time"

// Question represents a single four-option multiple-choice question.
type Question struct {
	ID            int       `json:"id"`
	Section       Section   `json:"section"`
	Level         Level     `json:"level"`
	QuestionText  string    `json:"question_text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectOption string    `json:"correct_option"` // single letter A-D
	CreatedAt     time.Time `json:"created_at"`
}

// PaperQuestion is a question as delivered to a candidate,
// with the correct option stripped.
type PaperQuestion struct {
	ID           int     `json:"id"`
	Section      Section `json:"section"`
	QuestionText string  `json:"question_text"`
	OptionA      string  `json:"option_a"`
	OptionB      string  `json:"option_b"`
	OptionC      string  `json:"option_c"`
	OptionD      string  `json:"option_d"`
}

// Paper groups the candidate's questions by section, in paper order.
type Paper struct {
	Level    Level                       `json:"level"`
	Sections map[Section][]PaperQuestion `json:"sections"`
}

// SaveQuestionRequest is the payload for creating or updating a question.
type SaveQuestionRequest struct {
	Section       Section `json:"section" binding:"required,oneof=UseOfEnglish LogicalReasoning NumericalReasoning CurrentAffairs SituationalJudgment"`
	Level         Level   `json:"level" binding:"required,oneof=100L 200L"`
	QuestionText  string  `json:"question_text" binding:"required,min=1,max=2000"`
	OptionA       string  `json:"option_a" binding:"required,max=500"`
	OptionB       string  `json:"option_b" binding:"required,max=500"`
	OptionC       string  `json:"option_c" binding:"required,max=500"`
	OptionD       string  `json:"option_d" binding:"required,max=500"`
	CorrectOption string  `json:"correct_option" binding:"required,len=1,oneof=A B C D a b c d"`
}
