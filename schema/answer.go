package schema

import (
	"fmt"
	"strings"
)

// ParseAnswer converts a raw string into an Answer.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseAnswer(s string) (Answer, error) {
	a := Answer(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ValidAnswers[a]; !ok {
		return AnswerUnset, fmt.Errorf("invalid answer %q (expected yes/partial/no/na or empty)", s)
	}
	return a, nil
}

// Points returns the points earned by the answer and whether it counts toward a score.
// Only yes, partial and no are counted; na and unset answers are excluded entirely.
func (a Answer) Points() (int, bool) {
	switch a {
	case AnswerYes:
		return PointsYes, true
	case AnswerPartial:
		return PointsPartial, true
	case AnswerNo:
		return PointsNo, true
	default:
		return 0, false
	}
}

// Answered reports whether the answer holds a scored value.
func (a Answer) Answered() bool {
	_, ok := a.Points()
	return ok
}

// Selection is the in-memory state of a multi-select classification group.
type Selection struct {
	NA      bool            `json:"na,omitempty"`
	Checked map[string]bool `json:"checked,omitempty"`
}

// Count returns the number of checked options.
func (s Selection) Count() int {
	n := 0
	for _, v := range s.Checked {
		if v {
			n++
		}
	}
	return n
}

// Empty reports whether the group is neither marked NA nor has any checked option.
func (s Selection) Empty() bool {
	return !s.NA && s.Count() == 0
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := Selection{NA: s.NA}
	if len(s.Checked) > 0 {
		out.Checked = make(map[string]bool, len(s.Checked))
		for k, v := range s.Checked {
			if v {
				out.Checked[k] = true
			}
		}
	}
	return out
}
