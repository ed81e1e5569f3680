package service

import (
	"fmt"
	"strings"

	"github.com/pvmlabs/examgate-backend/internal/model"
)

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 2

// GradedItem pairs a question with the option the candidate selected.
type GradedItem struct {
	Question model.Question
	Selected string
}

// ScoreResult is the outcome of grading one attempt.
type ScoreResult struct {
	Total int
	// Breakdown maps each section with at least one graded answer to an
	// "earned/possible" string. Sections with no graded answers are absent.
	Breakdown map[model.Section]string
	Answers   []model.Answer
}

// ScoreAnswers grades a set of answered questions. Option comparison is
// case-insensitive, so "a" and "A" are the same choice. Possible points
// per section count only the questions actually graded, not the full
// paper, so a short submission still reads as x/y over what was answered.
func ScoreAnswers(items []GradedItem) ScoreResult {
	res := ScoreResult{
		Breakdown: make(map[model.Section]string),
		Answers:   make([]model.Answer, 0, len(items)),
	}

	earned := make(map[model.Section]int)
	graded := make(map[model.Section]int)

	for _, item := range items {
		correct := strings.EqualFold(item.Selected, item.Question.CorrectOption)

		res.Answers = append(res.Answers, model.Answer{
			QuestionID:     item.Question.ID,
			SelectedOption: strings.ToUpper(item.Selected),
			CorrectOption:  strings.ToUpper(item.Question.CorrectOption),
			IsCorrect:      correct,
		})

		graded[item.Question.Section]++
		if correct {
			earned[item.Question.Section] += PointsPerCorrect
			res.Total += PointsPerCorrect
		}
	}

	for section, count := range graded {
		res.Breakdown[section] = fmt.Sprintf("%d/%d", earned[section], count*PointsPerCorrect)
	}

	return res
}
