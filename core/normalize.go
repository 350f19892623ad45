package core

import (
	"github.com/nfi-health/assess/schema"
)

// Normalize restores the relevance invariant on a copy of state and reports whether any
// value had to be corrected.
//
// Relevant elements holding a stale na are reset to unanswered, unless they accept na.
// Hidden elements follow their reset policy: na forces na, clear resets to unanswered.
// Elements are visited parents first, so dependents are judged against already normalized
// parents and a single pass reaches a fixpoint.
//
// Without a previous state an na on a relevant element that accepts na is taken as the
// assessor's answer. Use NormalizeChange when the state before the edit is known.
func Normalize(cl *schema.Checklist, state schema.FormState) (schema.FormState, bool) {
	return normalize(cl, nil, state)
}

// NormalizeChange normalizes next, the result of one edit applied to the normalized state
// prev. Elements that were hidden in prev and are relevant in next drop the na they were
// forced to while hidden, even when they accept na.
func NormalizeChange(cl *schema.Checklist, prev, next schema.FormState) (schema.FormState, bool) {
	return normalize(cl, &prev, next)
}

func normalize(cl *schema.Checklist, prev *schema.FormState, state schema.FormState) (schema.FormState, bool) {
	next := state.Clone()
	order := normalizeOrder(cl)

	dirty := false
	// A second pass only changes anything when the rules are cyclic.
	for range len(order) + 1 {
		changed := false
		for _, e := range order {
			revealed := prev != nil && !Relevance(e, *prev)
			if normalizeElement(e, revealed, &next) {
				changed = true
			}
		}
		if !changed {
			break
		}
		dirty = true
	}
	return next, dirty
}

// normalizeOrder visits parents first. Checklists whose rules form a cycle are rejected by
// NewSession and the loader; for those the declaration order is used and the pass repeats
// until it settles or the pass limit is reached.
func normalizeOrder(cl *schema.Checklist) []schema.Element {
	g, err := BuildGraph(cl)
	if err != nil {
		return cl.Elements()
	}
	return g.Order
}

// normalizeElement corrects one element. revealed marks an element that was hidden before
// the edit, so any na it holds was forced rather than answered.
func normalizeElement(e schema.Element, revealed bool, state *schema.FormState) bool {
	relevant := Relevance(e, *state)
	if e.Kind == schema.ChoiceElement {
		return normalizeChoice(e, relevant, revealed, state)
	}

	cur := state.Answer(e.Section, e.Key)
	want := cur
	switch {
	case relevant:
		if cur == schema.AnswerNA && (revealed || !e.AllowNA) {
			want = schema.AnswerUnset
		}
	case e.Policy == schema.ResetClear:
		want = schema.AnswerUnset
	default:
		want = schema.AnswerNA
	}
	if want == cur {
		return false
	}
	state.SetAnswer(e.Section, e.Key, want)
	return true
}

func normalizeChoice(e schema.Element, relevant, revealed bool, state *schema.FormState) bool {
	cur, present := state.Selections[e.Section][e.Key]
	var want schema.Selection
	switch {
	case relevant && cur.NA && e.AllowNA && !revealed:
		want = schema.Selection{NA: true}
	case relevant:
		want = cur.Clone()
		want.NA = false
		for opt := range want.Checked {
			if !e.Choice.HasOption(opt) {
				delete(want.Checked, opt)
			}
		}
		if len(want.Checked) == 0 {
			want.Checked = nil
		}
	case e.Policy == schema.ResetClear:
		want = schema.Selection{}
	default:
		want = schema.Selection{NA: true}
	}

	if sameSelection(cur, want) {
		return false
	}
	if !present && want.Empty() {
		return false
	}
	state.SetSelection(e.Section, e.Key, want)
	return true
}

func sameSelection(a, b schema.Selection) bool {
	if a.NA != b.NA || a.Count() != b.Count() {
		return false
	}
	for opt, v := range a.Checked {
		if v && !b.Checked[opt] {
			return false
		}
	}
	return true
}
