package model

// Section is one of the fixed topical categories a question belongs to.
type Section string

const (
	SectionUseOfEnglish        Section = "UseOfEnglish"
	SectionLogicalReasoning    Section = "LogicalReasoning"
	SectionNumericalReasoning  Section = "NumericalReasoning"
	SectionCurrentAffairs      Section = "CurrentAffairs"
	SectionSituationalJudgment Section = "SituationalJudgment"
)

// Sections lists every exam section in paper order.
var Sections = []Section{
	SectionUseOfEnglish,
	SectionLogicalReasoning,
	SectionNumericalReasoning,
	SectionCurrentAffairs,
	SectionSituationalJudgment,
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Level is the academic level a candidate sits the exam at.
type Level string

const (
	Level100 Level = "100L"
	Level200 Level = "200L"
)

// Valid reports whether l is a known academic level.
func (l Level) Valid() bool {
	return l == Level100 || l == Level200
}
