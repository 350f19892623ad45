package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nfi-health/assess/schema"
)

// ToPayload converts a form state into its wire form.
// Multi-select groups become sorted lists of checked option keys, or ["na"] when marked na.
func ToPayload(state schema.FormState) schema.Payload {
	p := schema.Payload{
		Fields:     make(map[string]string, len(state.Fields)),
		Answers:    make(map[string]map[string]string, len(state.Answers)),
		Selections: make(map[string]map[string][]string, len(state.Selections)),
	}
	maps.Copy(p.Fields, state.Fields)
	for section, answers := range state.Answers {
		m := make(map[string]string, len(answers))
		for key, a := range answers {
			m[key] = string(a)
		}
		p.Answers[section] = m
	}
	for section, sels := range state.Selections {
		m := make(map[string][]string, len(sels))
		for key, sel := range sels {
			m[key] = selectionToList(sel)
		}
		p.Selections[section] = m
	}
	return p
}

func selectionToList(sel schema.Selection) []string {
	if sel.NA {
		return []string{schema.SelectionNA}
	}
	list := []string{}
	for _, opt := range slices.Sorted(maps.Keys(sel.Checked)) {
		if sel.Checked[opt] {
			list = append(list, opt)
		}
	}
	return list
}

// FromPayload rehydrates a form state from its wire form and normalizes it.
// Values the checklist does not declare, and answers outside the answer domain, are dropped;
// each drop is reported as a warning.
func FromPayload(cl *schema.Checklist, p schema.Payload) (schema.FormState, []string) {
	state := schema.NewFormState()
	var warnings []string

	for _, name := range slices.Sorted(maps.Keys(p.Fields)) {
		f, ok := cl.FieldByName(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("dropped unknown field %s", name))
			continue
		}
		v := p.Fields[name]
		if v != "" && len(f.Options) > 0 && !slices.Contains(f.Options, v) {
			warnings = append(warnings, fmt.Sprintf("dropped field %s: %q is not one of its options", name, v))
			continue
		}
		state.SetField(name, v)
	}

	index := elementIndex(cl)
	for _, section := range slices.Sorted(maps.Keys(p.Answers)) {
		answers := p.Answers[section]
		for _, key := range slices.Sorted(maps.Keys(answers)) {
			ref := schema.Ref{Section: section, Key: key}
			e, ok := index[ref]
			if !ok || e.Kind != schema.ItemElement {
				warnings = append(warnings, fmt.Sprintf("dropped unknown item %s", ref))
				continue
			}
			a, err := schema.ParseAnswer(answers[key])
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("dropped %s: %v", ref, err))
				continue
			}
			state.SetAnswer(section, key, a)
		}
	}

	for _, section := range slices.Sorted(maps.Keys(p.Selections)) {
		sels := p.Selections[section]
		for _, key := range slices.Sorted(maps.Keys(sels)) {
			ref := schema.Ref{Section: section, Key: key}
			e, ok := index[ref]
			if !ok || e.Kind != schema.ChoiceElement {
				warnings = append(warnings, fmt.Sprintf("dropped unknown choice %s", ref))
				continue
			}
			sel, dropped := selectionFromList(e.Choice, sels[key])
			for _, opt := range dropped {
				warnings = append(warnings, fmt.Sprintf("dropped unknown option %s of %s", opt, ref))
			}
			state.SetSelection(section, key, sel)
		}
	}

	normalized, _ := Normalize(cl, state)
	return normalized, warnings
}

func selectionFromList(ch *schema.Choice, list []string) (schema.Selection, []string) {
	if slices.Contains(list, schema.SelectionNA) && !ch.HasOption(schema.SelectionNA) {
		return schema.Selection{NA: true}, nil
	}
	var sel schema.Selection
	var dropped []string
	for _, opt := range list {
		if !ch.HasOption(opt) {
			dropped = append(dropped, opt)
			continue
		}
		if sel.Checked == nil {
			sel.Checked = make(map[string]bool)
		}
		sel.Checked[opt] = true
	}
	return sel, dropped
}

func elementIndex(cl *schema.Checklist) map[schema.Ref]schema.Element {
	elements := cl.Elements()
	out := make(map[schema.Ref]schema.Element, len(elements))
	for _, e := range elements {
		out[e.Ref()] = e
	}
	return out
}
