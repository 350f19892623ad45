package core

import (
	"slices"

	"github.com/nfi-health/assess/schema"
)

// Evaluate decides whether a rule holds for the given state. A nil rule always holds.
//
// Leaves that point at a multi-select group read its checked options: eq and neq test a
// single option, in tests any of them, and answered needs at least one checked option.
// Leaves that point at an item compare its answer; answered needs yes, partial or no.
// Unknown kinds never hold.
func Evaluate(r *schema.Rule, state schema.FormState) bool {
	if r == nil {
		return true
	}
	switch r.Kind {
	case schema.RuleAll:
		for _, child := range r.Rules {
			if !Evaluate(child, state) {
				return false
			}
		}
		return true
	case schema.RuleAny:
		for _, child := range r.Rules {
			if Evaluate(child, state) {
				return true
			}
		}
		return false
	case schema.RuleNot:
		if len(r.Rules) != 1 {
			return false
		}
		return !Evaluate(r.Rules[0], state)
	case schema.RuleEq, schema.RuleNeq, schema.RuleIn, schema.RuleAnswered:
		return evaluateLeaf(r, state)
	default:
		return false
	}
}

func evaluateLeaf(r *schema.Rule, state schema.FormState) bool {
	if r.Section != "" {
		if sel, ok := state.Selections[r.Section][r.Field]; ok {
			return evaluateSelection(r, sel)
		}
		a := state.Answer(r.Section, r.Field)
		return evaluateValue(r, string(a), a.Answered())
	}
	v := state.Field(r.Field)
	return evaluateValue(r, v, v != "")
}

func evaluateValue(r *schema.Rule, v string, answered bool) bool {
	switch r.Kind {
	case schema.RuleEq:
		return v == r.Value
	case schema.RuleNeq:
		return v != r.Value
	case schema.RuleIn:
		return slices.Contains(r.Values, v)
	default:
		return answered
	}
}

func evaluateSelection(r *schema.Rule, sel schema.Selection) bool {
	switch r.Kind {
	case schema.RuleEq:
		return sel.Checked[r.Value]
	case schema.RuleNeq:
		return !sel.Checked[r.Value]
	case schema.RuleIn:
		return slices.ContainsFunc(r.Values, func(v string) bool { return sel.Checked[v] })
	default:
		return sel.Count() > 0
	}
}

// Relevance reports whether an element is in scope: its section rule, every ancestor group
// rule and its own rule must all hold.
func Relevance(e schema.Element, state schema.FormState) bool {
	for _, r := range e.Rules {
		if !Evaluate(r, state) {
			return false
		}
	}
	return true
}

// RelevantKeys lists the keys of every relevant element per section, in declaration order.
// Sections without relevant elements are omitted.
func RelevantKeys(cl *schema.Checklist, state schema.FormState) map[string][]string {
	out := make(map[string][]string)
	for _, e := range cl.Elements() {
		if Relevance(e, state) {
			out[e.Section] = append(out[e.Section], e.Key)
		}
	}
	return out
}
