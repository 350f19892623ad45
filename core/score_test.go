package core

import (
	"testing"

	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
)

func TestScoreBreathingScenario(t *testing.T) {
	cl := breathingChecklist()
	state, _ := Normalize(cl, breathingState())
	card := Score(cl, state)

	assert.Equal(t, []string{"prep", "drying", "normal_breathing"}, card.Order)
	assert.Equal(t, schema.SectionScore{Score: 3, MaxScore: 4}, card.Sections["prep"])
	assert.Equal(t, schema.SectionScore{Score: 2, MaxScore: 4}, card.Sections["drying"])
	assert.Equal(t, schema.SectionScore{Score: 4, MaxScore: 4}, card.Sections["normal_breathing"])
	assert.NotContains(t, card.Sections, "resuscitation")
	assert.Equal(t, schema.SectionScore{Score: 9, MaxScore: 12}, card.Overall)

	pct, ok := card.Overall.Percent()
	assert.True(t, ok)
	assert.Equal(t, 75, pct)
}

func TestScoreAfterBranchSwitch(t *testing.T) {
	cl := breathingChecklist()
	state, _ := Normalize(cl, breathingState())
	state.SetField("breathing_status", "no")
	state, _ = Normalize(cl, state)

	card := Score(cl, state)
	assert.Equal(t, []string{"prep", "drying", "resuscitation"}, card.Order)
	assert.Equal(t, schema.SectionScore{}, card.Sections["resuscitation"])
	_, ok := card.Sections["resuscitation"].Percent()
	assert.False(t, ok, "a section with nothing answered has no percentage")
	assert.Equal(t, schema.SectionScore{Score: 5, MaxScore: 8}, card.Overall)
}

func TestScoreExcludesHiddenItems(t *testing.T) {
	cl := &schema.Checklist{
		ID:     "hidden",
		Fields: []schema.Field{{Name: "extended"}},
		Sections: []schema.Section{
			{
				Name: "care",
				Items: []schema.Item{
					{Key: "a"}, {Key: "b"}, {Key: "c"},
					{Key: "d", Rule: schema.Eq("extended", "on")},
					{Key: "e", Rule: schema.Eq("extended", "on")},
				},
			},
		},
	}
	state := schema.NewFormState()
	for _, k := range []string{"a", "b", "c"} {
		state.SetAnswer("care", k, schema.AnswerYes)
	}
	state, _ = Normalize(cl, state)
	assert.Equal(t, schema.AnswerNA, state.Answer("care", "d"))

	card := Score(cl, state)
	assert.Equal(t, schema.SectionScore{Score: 6, MaxScore: 6}, card.Sections["care"])
}

func TestScoreSkipsUnscoredAndUnanswered(t *testing.T) {
	cl := symptomChecklist()
	state, _ := Normalize(cl, coughState())
	state.SetAnswer("treatment", "explain_dosing", schema.AnswerUnset)

	card := Score(cl, state)
	assert.NotContains(t, card.Sections, "symptoms")
	assert.Equal(t, schema.SectionScore{Score: 5, MaxScore: 6}, card.Sections["cough"])
	assert.Equal(t, schema.SectionScore{Score: 2, MaxScore: 2}, card.Sections["treatment"])
	assert.Equal(t, schema.SectionScore{Score: 7, MaxScore: 8}, card.Overall)
}

func TestScoreIgnoresAnswersOfHiddenItemsInRawState(t *testing.T) {
	cl := breathingChecklist()
	state := breathingState()
	state.SetAnswer("resuscitation", "r1", schema.AnswerYes)

	card := Score(cl, state)
	assert.Equal(t, schema.SectionScore{Score: 9, MaxScore: 12}, card.Overall)
}
