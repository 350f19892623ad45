package core

import (
	"github.com/nfi-health/assess/schema"
)

// Score computes per-section and overall scores for a form.
// Unscored sections, sections out of scope, hidden elements and na or unanswered items are
// skipped. Each counted item adds 2 to the section maximum and 2, 1 or 0 to its score.
func Score(cl *schema.Checklist, state schema.FormState) schema.Scorecard {
	card := schema.Scorecard{Sections: make(map[string]schema.SectionScore)}
	elements := elementsBySection(cl)

	for _, s := range cl.Sections {
		if s.Unscored || !Evaluate(s.Rule, state) {
			continue
		}
		var ss schema.SectionScore
		for _, e := range elements[s.Name] {
			if e.Unscored || !Relevance(e, state) {
				continue
			}
			points, counted := state.Answer(e.Section, e.Key).Points()
			if !counted {
				continue
			}
			ss = ss.Add(schema.SectionScore{Score: points, MaxScore: schema.PointsPerItem})
		}
		card.Order = append(card.Order, s.Name)
		card.Sections[s.Name] = ss
		card.Overall = card.Overall.Add(ss)
	}
	return card
}

func elementsBySection(cl *schema.Checklist) map[string][]schema.Element {
	out := make(map[string][]schema.Element, len(cl.Sections))
	for _, e := range cl.Elements() {
		out[e.Section] = append(out[e.Section], e)
	}
	return out
}
