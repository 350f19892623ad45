package core

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nfi-health/assess/core/catalog"
	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForcesHiddenBranchToNA(t *testing.T) {
	cl := breathingChecklist()
	got, dirty := Normalize(cl, breathingState())

	assert.True(t, dirty)
	assert.Equal(t, schema.AnswerNA, got.Answer("resuscitation", "r1"))
	assert.Equal(t, schema.AnswerNA, got.Answer("resuscitation", "r2"))
	assert.Equal(t, schema.AnswerYes, got.Answer("normal_breathing", "n1"))
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	cl := breathingChecklist()
	in := breathingState()
	_, _ = Normalize(cl, in)
	assert.NotContains(t, in.Answers, "resuscitation")
}

func TestNormalizeSwitchingBranch(t *testing.T) {
	cl := breathingChecklist()
	state, _ := Normalize(cl, breathingState())
	require.True(t, CheckCompletion(cl, state).Complete)

	state.SetField("breathing_status", "no")
	state, dirty := Normalize(cl, state)

	assert.True(t, dirty)
	assert.Equal(t, schema.AnswerNA, state.Answer("normal_breathing", "n1"))
	assert.Equal(t, schema.AnswerNA, state.Answer("normal_breathing", "n2"))
	assert.Equal(t, schema.AnswerUnset, state.Answer("resuscitation", "r1"))
	assert.Equal(t, schema.AnswerUnset, state.Answer("resuscitation", "r2"))
	assert.Contains(t, state.Answers["resuscitation"], "r1", "stale na must become an explicit unanswered value")

	c := CheckCompletion(cl, state)
	assert.False(t, c.Complete)
	assert.Equal(t, []string{"resuscitation"}, c.Incomplete)
}

func TestNormalizeParentNoClearsDependents(t *testing.T) {
	cl := symptomChecklist()
	state, dirty := Normalize(cl, coughState())
	require.False(t, dirty, "a consistent state needs no correction")

	state.SetAnswer("symptoms", "cough_present", schema.AnswerNo)
	state, dirty = Normalize(cl, state)
	assert.True(t, dirty)

	assert.Equal(t, schema.AnswerUnset, state.Answer("cough", "count_breaths"))
	assert.Equal(t, schema.AnswerUnset, state.Answer("cough", "check_indrawing"))
	assert.True(t, state.Selection("cough", "classification").Empty())
	assert.False(t, state.Selection("cough", "classification").NA)
	assert.Equal(t, schema.AnswerUnset, state.Answer("cough", "supervisor_correct"), "nested group inherits the clear policy")
	assert.Equal(t, schema.AnswerNA, state.Answer("treatment", "give_amoxicillin"), "dependents of cleared answers follow their own policy")

	card := Score(cl, state)
	assert.NotContains(t, card.Sections, "cough")
	assert.Equal(t, []string{"treatment"}, card.Order)
	assert.Equal(t, schema.SectionScore{Score: 2, MaxScore: 2}, card.Overall)

	// Reporting the symptom again brings the subgroup back unanswered.
	state.SetAnswer("symptoms", "cough_present", schema.AnswerYes)
	state, _ = Normalize(cl, state)
	assert.Equal(t, schema.AnswerUnset, state.Answer("cough", "count_breaths"))
	assert.Equal(t, schema.Completion{Incomplete: []string{"cough"}}, CheckCompletion(cl, state))
}

func TestNormalizeStaleNA(t *testing.T) {
	cl := symptomChecklist()
	state := coughState()
	state.SetAnswer("cough", "count_breaths", schema.AnswerNA)

	got, dirty := Normalize(cl, state)
	assert.True(t, dirty)
	assert.Equal(t, schema.AnswerUnset, got.Answer("cough", "count_breaths"))
	assert.Equal(t, schema.AnswerNA, got.Answer("treatment", "follow_up"), "items accepting na keep it")
}

// revealChecklist gates items and a choice that accept na behind a branch selector.
func revealChecklist() *schema.Checklist {
	return &schema.Checklist{
		ID:     "reveal",
		Fields: []schema.Field{{Name: "referred", Options: []string{"yes", "no"}}},
		Sections: []schema.Section{
			{
				Name: "referral",
				Rule: schema.Eq("referred", "yes"),
				Items: []schema.Item{
					{Key: "write_note"},
					{Key: "arrange_transport", AllowNA: true},
				},
				Choices: []schema.Choice{
					{Key: "facility", AllowNA: true, Options: []schema.Option{{Key: "hospital"}, {Key: "health_centre"}}},
				},
			},
		},
	}
}

func TestNormalizeChangeResetsRevealedNA(t *testing.T) {
	cl := revealChecklist()
	prev, _ := Normalize(cl, schema.NewFormState())
	require.Equal(t, schema.AnswerNA, prev.Answer("referral", "arrange_transport"))
	require.Equal(t, schema.Selection{NA: true}, prev.Selection("referral", "facility"))

	next := prev.Clone()
	next.SetField("referred", "yes")
	got, dirty := NormalizeChange(cl, prev, next)

	assert.True(t, dirty)
	assert.Equal(t, schema.AnswerUnset, got.Answer("referral", "write_note"))
	assert.Equal(t, schema.AnswerUnset, got.Answer("referral", "arrange_transport"), "na forced while hidden is dropped")
	assert.Equal(t, schema.Selection{}, got.Selection("referral", "facility"))
	assert.ElementsMatch(t, []schema.Ref{
		{Section: "referral", Key: "write_note"},
		{Section: "referral", Key: "arrange_transport"},
		{Section: "referral", Key: "facility"},
	}, IncompleteElements(cl, got))

	// Plain Normalize has no previous state and keeps the na of elements accepting it.
	kept, _ := Normalize(cl, next)
	assert.Equal(t, schema.AnswerNA, kept.Answer("referral", "arrange_transport"))
}

func TestNormalizeChangeKeepsChosenNA(t *testing.T) {
	cl := revealChecklist()
	prev := schema.NewFormState()
	prev.SetField("referred", "yes")
	prev, _ = Normalize(cl, prev)

	next := prev.Clone()
	next.SetAnswer("referral", "arrange_transport", schema.AnswerNA)
	next.SetSelection("referral", "facility", schema.Selection{NA: true})
	got, dirty := NormalizeChange(cl, prev, next)

	assert.False(t, dirty)
	assert.Equal(t, schema.AnswerNA, got.Answer("referral", "arrange_transport"))
	assert.Equal(t, schema.Selection{NA: true}, got.Selection("referral", "facility"))

	// Hiding and revealing the section again discards the chosen na too.
	hidden := got.Clone()
	hidden.SetField("referred", "no")
	hidden, _ = NormalizeChange(cl, got, hidden)
	shown := hidden.Clone()
	shown.SetField("referred", "yes")
	shown, _ = NormalizeChange(cl, hidden, shown)
	assert.Equal(t, schema.AnswerUnset, shown.Answer("referral", "arrange_transport"))
	assert.True(t, shown.Selection("referral", "facility").Empty())
}

func TestNormalizeChoices(t *testing.T) {
	cl := &schema.Checklist{
		ID:     "choices",
		Fields: []schema.Field{{Name: "age_group", Options: []string{"infant", "child"}}},
		Sections: []schema.Section{
			{
				Name: "infant",
				Rule: schema.Eq("age_group", "infant"),
				Choices: []schema.Choice{
					{Key: "classification", Options: []schema.Option{{Key: "jaundice"}, {Key: "no_infection"}}},
				},
			},
		},
	}

	state := schema.NewFormState()
	state.SetField("age_group", "child")
	state.SetSelection("infant", "classification", schema.Selection{Checked: map[string]bool{"jaundice": true}})

	got, dirty := Normalize(cl, state)
	assert.True(t, dirty)
	assert.Equal(t, schema.Selection{NA: true}, got.Selection("infant", "classification"))

	got.SetField("age_group", "infant")
	got, dirty = Normalize(cl, got)
	assert.True(t, dirty)
	assert.Equal(t, schema.Selection{}, got.Selection("infant", "classification"))

	got.SetSelection("infant", "classification", schema.Selection{Checked: map[string]bool{"jaundice": true, "unknown": true}})
	got, dirty = Normalize(cl, got)
	assert.True(t, dirty)
	assert.Equal(t, schema.Selection{Checked: map[string]bool{"jaundice": true}}, got.Selection("infant", "classification"))
}

func TestNormalizeIdempotent(t *testing.T) {
	checklists := append(catalog.All(), breathingChecklist(), symptomChecklist())
	rng := rand.New(rand.NewPCG(7, 11))

	for _, cl := range checklists {
		t.Run(cl.ID, func(t *testing.T) {
			for range 200 {
				state := randomState(rng, cl)
				once, _ := Normalize(cl, state)
				twice, dirty := Normalize(cl, once)

				assert.False(t, dirty)
				if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
					t.Fatalf("second normalization changed the state (-once +twice):\n%s", diff)
				}

				card := Score(cl, once)
				for _, name := range card.Order {
					ss := card.Sections[name]
					assert.GreaterOrEqual(t, ss.Score, 0)
					assert.LessOrEqual(t, ss.Score, ss.MaxScore)
				}
			}
		})
	}
}

// randomState fills a checklist with arbitrary values, including ones that break the relevance invariant.
func randomState(rng *rand.Rand, cl *schema.Checklist) schema.FormState {
	answers := []schema.Answer{schema.AnswerUnset, schema.AnswerYes, schema.AnswerPartial, schema.AnswerNo, schema.AnswerNA}
	state := schema.NewFormState()
	for _, f := range cl.Fields {
		if len(f.Options) > 0 && rng.IntN(4) > 0 {
			state.SetField(f.Name, f.Options[rng.IntN(len(f.Options))])
		}
	}
	for _, e := range cl.Elements() {
		if rng.IntN(5) == 0 {
			continue
		}
		if e.Kind == schema.ItemElement {
			state.SetAnswer(e.Section, e.Key, answers[rng.IntN(len(answers))])
			continue
		}
		sel := schema.Selection{NA: rng.IntN(4) == 0, Checked: map[string]bool{}}
		for _, opt := range e.Choice.Options {
			sel.Checked[opt.Key] = rng.IntN(2) == 0
		}
		state.SetSelection(e.Section, e.Key, sel)
	}
	return state
}
