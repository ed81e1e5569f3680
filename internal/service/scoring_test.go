package service

import (
	"testing"

	"github.com/pvmlabs/examgate-backend/internal/model"
)

func q(id int, section model.Section, correct string) model.Question {
	return model.Question{
		ID:            id,
		Section:       section,
		Level:         model.Level100,
		CorrectOption: correct,
	}
}

func TestScoreAnswersCaseInsensitive(t *testing.T) {
	items := []GradedItem{
		{Question: q(1, model.SectionUseOfEnglish, "A"), Selected: "a"},
		{Question: q(2, model.SectionUseOfEnglish, "b"), Selected: "B"},
	}

	res := ScoreAnswers(items)

	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
	for i, ans := range res.Answers {
		if !ans.IsCorrect {
			t.Errorf("answer %d marked incorrect, want correct", i)
		}
	}
	if got := res.Breakdown[model.SectionUseOfEnglish]; got != "4/4" {
		t.Errorf("breakdown = %q, want \"4/4\"", got)
	}
}

func TestScoreAnswersWrongAndMixed(t *testing.T) {
	items := []GradedItem{
		{Question: q(1, model.SectionLogicalReasoning, "A"), Selected: "B"},
		{Question: q(2, model.SectionLogicalReasoning, "C"), Selected: "C"},
		{Question: q(3, model.SectionLogicalReasoning, "D"), Selected: "A"},
	}

	res := ScoreAnswers(items)

	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if got := res.Breakdown[model.SectionLogicalReasoning]; got != "2/6" {
		t.Errorf("breakdown = %q, want \"2/6\"", got)
	}
}

func TestScoreAnswersOmitsUnansweredSections(t *testing.T) {
	items := []GradedItem{
		{Question: q(1, model.SectionUseOfEnglish, "A"), Selected: "A"},
		{Question: q(2, model.SectionCurrentAffairs, "B"), Selected: "B"},
		{Question: q(3, model.SectionSituationalJudgment, "C"), Selected: "D"},
	}

	res := ScoreAnswers(items)

	if len(res.Breakdown) != 3 {
		t.Fatalf("breakdown has %d sections, want 3: %v", len(res.Breakdown), res.Breakdown)
	}
	if _, ok := res.Breakdown[model.SectionLogicalReasoning]; ok {
		t.Error("breakdown includes a section with no graded answers")
	}
	if got := res.Breakdown[model.SectionSituationalJudgment]; got != "0/2" {
		t.Errorf("breakdown = %q, want \"0/2\"", got)
	}
}

func TestScoreAnswersEmpty(t *testing.T) {
	res := ScoreAnswers(nil)

	if res.Total != 0 {
		t.Errorf("Total = %d, want 0", res.Total)
	}
	if len(res.Breakdown) != 0 {
		t.Errorf("breakdown not empty: %v", res.Breakdown)
	}
	if len(res.Answers) != 0 {
		t.Errorf("answers not empty: %v", res.Answers)
	}
}

func TestScoreAnswersNormalizesRecordedOptions(t *testing.T) {
	items := []GradedItem{
		{Question: q(1, model.SectionNumericalReasoning, "c"), Selected: "c"},
	}

	res := ScoreAnswers(items)

	if res.Answers[0].SelectedOption != "C" || res.Answers[0].CorrectOption != "C" {
		t.Errorf("recorded options not normalized: %+v", res.Answers[0])
	}
}
