package core

import (
	"testing"

	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
)

func TestCheckCompletionRequiredSelector(t *testing.T) {
	cl := breathingChecklist()
	state := breathingState()
	state.SetField("breathing_status", "")
	state.SetAnswer("prep", "p1", schema.AnswerUnset)

	c := CheckCompletion(cl, state)
	assert.False(t, c.Complete)
	assert.Equal(t, []string{"breathing_status"}, c.Incomplete, "required fields are reported alone")
}

func TestCheckCompletionRequiredDefault(t *testing.T) {
	cl := &schema.Checklist{
		ID: "defaults",
		Fields: []schema.Field{
			{Name: "visit", Options: []string{"select", "first", "follow_up"}, Default: "select", Required: true},
			{Name: "notes"},
		},
		Sections: []schema.Section{{Name: "s", Items: []schema.Item{{Key: "a"}}}},
	}
	state := schema.NewFormState()
	state.SetField("visit", "select")
	state.SetAnswer("s", "a", schema.AnswerYes)
	assert.Equal(t, schema.Completion{Incomplete: []string{"visit"}}, CheckCompletion(cl, state))

	state.SetField("visit", "third")
	assert.False(t, CheckCompletion(cl, state).Complete, "values outside the options do not count")

	state.SetField("visit", "first")
	assert.Equal(t, schema.Completion{Complete: true}, CheckCompletion(cl, state))
}

func TestCheckCompletionSections(t *testing.T) {
	cl := breathingChecklist()
	state, _ := Normalize(cl, breathingState())
	assert.Equal(t, schema.Completion{Complete: true}, CheckCompletion(cl, state))

	state.SetAnswer("drying", "d2", schema.AnswerUnset)
	state.SetAnswer("prep", "p1", schema.AnswerUnset)
	c := CheckCompletion(cl, state)
	assert.False(t, c.Complete)
	assert.Equal(t, []string{"prep", "drying"}, c.Incomplete, "sections are reported in checklist order")

	assert.Equal(t, []schema.Ref{
		{Section: "prep", Key: "p1"},
		{Section: "drying", Key: "d2"},
	}, IncompleteElements(cl, state))
}

func TestCheckCompletionMultiSelect(t *testing.T) {
	cl := symptomChecklist()
	state, _ := Normalize(cl, coughState())
	assert.True(t, CheckCompletion(cl, state).Complete)

	state.SetSelection("cough", "classification", schema.Selection{Checked: map[string]bool{"pneumonia": false}})
	state, _ = Normalize(cl, state)
	c := CheckCompletion(cl, state)
	assert.False(t, c.Complete)
	assert.Equal(t, []string{"cough"}, c.Incomplete)

	state.SetSelection("cough", "classification", schema.Selection{NA: true})
	state, _ = Normalize(cl, state)
	assert.True(t, state.Selection("cough", "classification").NA)
	assert.True(t, CheckCompletion(cl, state).Complete, "a relevant group marked na is not empty")
}

func TestCheckCompletionAgreesWithNormalizer(t *testing.T) {
	cl := breathingChecklist()
	state, _ := Normalize(cl, breathingState())
	state.SetField("breathing_status", "no")
	state, _ = Normalize(cl, state)
	state.SetAnswer("resuscitation", "r1", schema.AnswerYes)
	state.SetAnswer("resuscitation", "r2", schema.AnswerNo)

	// Items forced to na by the branch switch never block completion.
	assert.Equal(t, schema.Completion{Complete: true}, CheckCompletion(cl, state))
}
