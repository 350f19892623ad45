package core

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPayload(t *testing.T) {
	state := coughState()
	state.SetSelection("cough", "classification", schema.Selection{Checked: map[string]bool{"pneumonia": true, "no_pneumonia": false}})
	p := ToPayload(state)

	assert.Equal(t, "yes", p.Answers["symptoms"]["cough_present"])
	assert.Equal(t, []string{"pneumonia"}, p.Selections["cough"]["classification"])

	state.SetSelection("cough", "classification", schema.Selection{NA: true, Checked: map[string]bool{"pneumonia": true}})
	p = ToPayload(state)
	assert.Equal(t, []string{schema.SelectionNA}, p.Selections["cough"]["classification"])
}

func TestPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		cl    *schema.Checklist
		state schema.FormState
	}{
		{"breathing", breathingChecklist(), breathingState()},
		{"cough", symptomChecklist(), coughState()},
		{"cough withdrawn", symptomChecklist(), func() schema.FormState {
			s := coughState()
			s.SetAnswer("symptoms", "cough_present", schema.AnswerNo)
			return s
		}()},
		{"classification na", symptomChecklist(), func() schema.FormState {
			s := coughState()
			s.SetSelection("cough", "classification", schema.Selection{NA: true})
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := Normalize(tt.cl, tt.state)

			raw, err := json.Marshal(ToPayload(want))
			require.NoError(t, err)
			var p schema.Payload
			require.NoError(t, json.Unmarshal(raw, &p))

			got, warnings := FromPayload(tt.cl, p)
			assert.Empty(t, warnings)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip changed the state (-want +got):\n%s", diff)
			}
			assert.Equal(t, Score(tt.cl, want), Score(tt.cl, got))
		})
	}
}

func TestFromPayloadDropsUnknownValues(t *testing.T) {
	cl := symptomChecklist()
	p := schema.Payload{
		Fields: map[string]string{"staff": "x"},
		Answers: map[string]map[string]string{
			"symptoms": {"cough_present": "YES", "ear_problem": "yes"},
			"cough":    {"count_breaths": "maybe", "classification": "yes"},
			"unknown":  {"a": "yes"},
		},
		Selections: map[string]map[string][]string{
			"cough":     {"classification": {"pneumonia", "wheeze"}},
			"treatment": {"explain_dosing": {"yes"}},
		},
	}

	state, warnings := FromPayload(cl, p)
	assert.Equal(t, []string{
		"dropped unknown field staff",
		"dropped unknown item cough.classification",
		`dropped cough.count_breaths: invalid answer "maybe" (expected yes/partial/no/na or empty)`,
		"dropped unknown item symptoms.ear_problem",
		"dropped unknown item unknown.a",
		"dropped unknown option wheeze of cough.classification",
		"dropped unknown choice treatment.explain_dosing",
	}, warnings)

	assert.Equal(t, schema.AnswerYes, state.Answer("symptoms", "cough_present"))
	assert.Equal(t, schema.AnswerUnset, state.Answer("cough", "count_breaths"))
	assert.Equal(t, schema.Selection{Checked: map[string]bool{"pneumonia": true}}, state.Selection("cough", "classification"))
}

func TestFromPayloadRejectsInvalidSelectorValue(t *testing.T) {
	cl := breathingChecklist()
	state, warnings := FromPayload(cl, schema.Payload{Fields: map[string]string{"breathing_status": "sometimes"}})

	assert.Equal(t, []string{`dropped field breathing_status: "sometimes" is not one of its options`}, warnings)
	assert.Empty(t, state.Field("breathing_status"))
	assert.Equal(t, schema.AnswerNA, state.Answer("normal_breathing", "n1"), "rehydrated state is normalized")
}
