package core

import (
	"github.com/nfi-health/assess/schema"
)

// breathingChecklist is the two-branch birth checklist used across the engine tests.
func breathingChecklist() *schema.Checklist {
	return &schema.Checklist{
		ID: "breathing",
		Fields: []schema.Field{
			{Name: "breathing_status", Options: []string{"yes", "no"}, Required: true},
		},
		Sections: []schema.Section{
			{Name: "prep", Items: []schema.Item{{Key: "p1"}, {Key: "p2"}}},
			{Name: "drying", Items: []schema.Item{{Key: "d1"}, {Key: "d2"}}},
			{
				Name:  "normal_breathing",
				Rule:  schema.Eq("breathing_status", "yes"),
				Items: []schema.Item{{Key: "n1"}, {Key: "n2"}},
			},
			{
				Name:  "resuscitation",
				Rule:  schema.Eq("breathing_status", "no"),
				Items: []schema.Item{{Key: "r1"}, {Key: "r2"}},
			},
		},
	}
}

// breathingState answers the breathing checklist with the normal breathing branch selected.
func breathingState() schema.FormState {
	s := schema.NewFormState()
	s.SetField("breathing_status", "yes")
	s.SetAnswer("prep", "p1", schema.AnswerYes)
	s.SetAnswer("prep", "p2", schema.AnswerPartial)
	s.SetAnswer("drying", "d1", schema.AnswerNo)
	s.SetAnswer("drying", "d2", schema.AnswerYes)
	s.SetAnswer("normal_breathing", "n1", schema.AnswerYes)
	s.SetAnswer("normal_breathing", "n2", schema.AnswerYes)
	return s
}

// symptomChecklist has a parent question gating a cleared subgroup with a classification.
func symptomChecklist() *schema.Checklist {
	return &schema.Checklist{
		ID: "symptom",
		Sections: []schema.Section{
			{
				Name:     "symptoms",
				Unscored: true,
				Items:    []schema.Item{{Key: "cough_present"}},
			},
			{
				Name:   "cough",
				Rule:   schema.AnswerEq("symptoms", "cough_present", schema.AnswerYes),
				Hidden: schema.ResetClear,
				Items:  []schema.Item{{Key: "count_breaths"}, {Key: "check_indrawing"}},
				Choices: []schema.Choice{
					{Key: "classification", AllowNA: true, Options: []schema.Option{{Key: "pneumonia"}, {Key: "no_pneumonia"}}},
				},
				Groups: []schema.Group{
					{
						Name:  "supervisor",
						Rule:  schema.Answered("cough", "classification"),
						Items: []schema.Item{{Key: "supervisor_correct"}},
					},
				},
			},
			{
				Name: "treatment",
				Items: []schema.Item{
					{Key: "explain_dosing"},
					{Key: "follow_up", AllowNA: true},
				},
				Groups: []schema.Group{
					{
						Name:  "antibiotic",
						Rule:  schema.Checked("cough", "classification", "pneumonia"),
						Items: []schema.Item{{Key: "give_amoxicillin"}},
					},
				},
			},
		},
	}
}

// coughState reports cough and answers every cough element.
func coughState() schema.FormState {
	s := schema.NewFormState()
	s.SetAnswer("symptoms", "cough_present", schema.AnswerYes)
	s.SetAnswer("cough", "count_breaths", schema.AnswerYes)
	s.SetAnswer("cough", "check_indrawing", schema.AnswerPartial)
	s.SetSelection("cough", "classification", schema.Selection{Checked: map[string]bool{"pneumonia": true}})
	s.SetAnswer("cough", "supervisor_correct", schema.AnswerYes)
	s.SetAnswer("treatment", "explain_dosing", schema.AnswerYes)
	s.SetAnswer("treatment", "follow_up", schema.AnswerNA)
	s.SetAnswer("treatment", "give_amoxicillin", schema.AnswerYes)
	return s
}
