package core

import (
	"slices"

	"github.com/nfi-health/assess/schema"
)

// CheckCompletion decides whether a form may be finalized.
//
// Required fields left empty, at their default or outside their options fail immediately and
// are the only names reported. Otherwise every section holding a relevant unanswered item, or
// a relevant multi-select group that is neither na nor has a checked option, is reported in
// checklist order.
func CheckCompletion(cl *schema.Checklist, state schema.FormState) schema.Completion {
	var missing []string
	for _, f := range cl.Fields {
		if !f.Required {
			continue
		}
		v := state.Field(f.Name)
		if f.Unset(v) || (len(f.Options) > 0 && !slices.Contains(f.Options, v)) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return schema.Completion{Complete: false, Incomplete: missing}
	}

	elements := elementsBySection(cl)
	for _, s := range cl.Sections {
		if !slices.ContainsFunc(elements[s.Name], func(e schema.Element) bool {
			return elementIncomplete(e, state)
		}) {
			continue
		}
		missing = append(missing, s.Name)
	}
	return schema.Completion{Complete: len(missing) == 0, Incomplete: missing}
}

// IncompleteElements lists every relevant element still waiting for an answer.
func IncompleteElements(cl *schema.Checklist, state schema.FormState) []schema.Ref {
	var out []schema.Ref
	for _, e := range cl.Elements() {
		if elementIncomplete(e, state) {
			out = append(out, e.Ref())
		}
	}
	return out
}

func elementIncomplete(e schema.Element, state schema.FormState) bool {
	if !Relevance(e, state) {
		return false
	}
	if e.Kind == schema.ChoiceElement {
		return state.Selection(e.Section, e.Key).Empty()
	}
	return state.Answer(e.Section, e.Key) == schema.AnswerUnset
}
