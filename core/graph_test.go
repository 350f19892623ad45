package core

import (
	"testing"

	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph(t *testing.T) {
	g, err := BuildGraph(symptomChecklist())
	require.NoError(t, err)

	present := schema.Ref{Section: "symptoms", Key: "cough_present"}
	classification := schema.Ref{Section: "cough", Key: "classification"}
	supervisor := schema.Ref{Section: "cough", Key: "supervisor_correct"}
	amoxicillin := schema.Ref{Section: "treatment", Key: "give_amoxicillin"}

	assert.ElementsMatch(t, []schema.Ref{
		{Section: "cough", Key: "count_breaths"},
		{Section: "cough", Key: "check_indrawing"},
		classification,
		supervisor,
	}, g.Children[present])
	assert.ElementsMatch(t, []schema.Ref{supervisor, amoxicillin}, g.Children[classification])

	pos := make(map[schema.Ref]int, len(g.Order))
	for i, e := range g.Order {
		pos[e.Ref()] = i
	}
	assert.Len(t, pos, len(symptomChecklist().Elements()))
	assert.Less(t, pos[present], pos[classification])
	assert.Less(t, pos[classification], pos[supervisor])
	assert.Less(t, pos[classification], pos[amoxicillin])

	assert.Equal(t, []schema.Ref{
		{Section: "cough", Key: "count_breaths"},
		{Section: "cough", Key: "check_indrawing"},
		classification,
		supervisor,
		amoxicillin,
	}, g.Dependents(present))
}

func TestBuildGraphFieldDependents(t *testing.T) {
	g, err := BuildGraph(breathingChecklist())
	require.NoError(t, err)

	assert.Len(t, g.Fields["breathing_status"], 4)
	assert.Len(t, g.Dependents(schema.Ref{Key: "breathing_status"}), 4)
	assert.Empty(t, g.Dependents(schema.Ref{Section: "prep", Key: "p1"}))

	e, ok := g.Element(schema.Ref{Section: "resuscitation", Key: "r2"})
	assert.True(t, ok)
	assert.Equal(t, schema.ItemElement, e.Kind)
}

func TestBuildGraphRejectsCycles(t *testing.T) {
	cl := &schema.Checklist{
		ID: "cyclic",
		Sections: []schema.Section{
			{
				Name: "s",
				Items: []schema.Item{
					{Key: "a", Rule: schema.Answered("s", "b")},
					{Key: "b", Rule: schema.Answered("s", "a")},
					{Key: "c"},
				},
			},
		},
	}
	_, err := BuildGraph(cl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s.a, s.b")
	assert.Error(t, ValidateChecklist(cl))

	// Normalizing a cyclic checklist still terminates.
	state := schema.NewFormState()
	state.SetAnswer("s", "a", schema.AnswerYes)
	assert.NotPanics(t, func() { _, _ = Normalize(cl, state) })
}
