// Package schema has checklist definitions, form state and persisted models for all parts of assess.
package schema

import "maps"

// FormState is the full in-memory answer-set for one assessment session.
type FormState struct {
	Fields     map[string]string               `json:"fields"`     // scalar fields and branch selectors
	Answers    map[string]map[string]Answer    `json:"answers"`    // section -> item key -> answer
	Selections map[string]map[string]Selection `json:"selections"` // section -> choice key -> selection
}

// NewFormState returns an empty form state with all maps allocated.
func NewFormState() FormState {
	return FormState{
		Fields:     make(map[string]string),
		Answers:    make(map[string]map[string]Answer),
		Selections: make(map[string]map[string]Selection),
	}
}

// Field returns the value of a scalar field.
func (s FormState) Field(name string) string {
	return s.Fields[name]
}

// Answer returns the answer for an item in a section.
func (s FormState) Answer(section, key string) Answer {
	return s.Answers[section][key]
}

// Selection returns the selection for a choice group in a section.
func (s FormState) Selection(section, key string) Selection {
	return s.Selections[section][key]
}

// SetAnswer stores an answer, allocating the section map as needed.
func (s *FormState) SetAnswer(section, key string, a Answer) {
	if s.Answers == nil {
		s.Answers = make(map[string]map[string]Answer)
	}
	if s.Answers[section] == nil {
		s.Answers[section] = make(map[string]Answer)
	}
	s.Answers[section][key] = a
}

// SetSelection stores a selection, allocating the section map as needed.
func (s *FormState) SetSelection(section, key string, sel Selection) {
	if s.Selections == nil {
		s.Selections = make(map[string]map[string]Selection)
	}
	if s.Selections[section] == nil {
		s.Selections[section] = make(map[string]Selection)
	}
	s.Selections[section][key] = sel
}

// SetField stores a scalar field value.
func (s *FormState) SetField(name, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[name] = value
}

// Clone returns a deep copy of the form state.
func (s FormState) Clone() FormState {
	out := NewFormState()
	maps.Copy(out.Fields, s.Fields)
	for section, answers := range s.Answers {
		m := make(map[string]Answer, len(answers))
		maps.Copy(m, answers)
		out.Answers[section] = m
	}
	for section, sels := range s.Selections {
		m := make(map[string]Selection, len(sels))
		for k, v := range sels {
			m[k] = v.Clone()
		}
		out.Selections[section] = m
	}
	return out
}

// SectionScore is the derived score of one section.
type SectionScore struct {
	Score    int `json:"score"`
	MaxScore int `json:"max_score"`
}

// Add accumulates another score into this one.
func (s SectionScore) Add(o SectionScore) SectionScore {
	return SectionScore{Score: s.Score + o.Score, MaxScore: s.MaxScore + o.MaxScore}
}

// Percent returns round(100 * score / max). The result is undefined when max is zero.
func (s SectionScore) Percent() (int, bool) {
	if s.MaxScore <= 0 {
		return 0, false
	}
	// Integer rounding half-up; both operands are non-negative.
	return (200*s.Score + s.MaxScore) / (2 * s.MaxScore), true
}

// Scorecard holds per-section scores in checklist order plus the overall aggregate.
type Scorecard struct {
	Order    []string                `json:"order"`
	Sections map[string]SectionScore `json:"sections"`
	Overall  SectionScore            `json:"overall"`
}

// Completion reports whether a form may be finalized.
type Completion struct {
	Complete   bool     `json:"complete"`
	Incomplete []string `json:"incomplete,omitempty"` // required fields or section names, in order
}
