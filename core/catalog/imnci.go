package catalog

import "github.com/nfi-health/assess/schema"

// Branch selector of the IMNCI checklist.
const AgeGroup = "age_group"

// Age groups of the IMNCI checklist.
const (
	YoungInfant = "infant_0_2m"
	Child       = "child_2_59m"
)

// IMNCI returns the Integrated Management of Newborn and Childhood Illness case-management
// checklist. Symptom sections only apply once the symptom is reported present; when it is
// withdrawn their answers are cleared rather than marked na.
func IMNCI() *schema.Checklist {
	return &schema.Checklist{
		ID:    IMNCIID,
		Title: "Integrated Management of Newborn and Childhood Illness",
		Fields: []schema.Field{
			{Name: "session_date", Label: "Session date"},
			{Name: AgeGroup, Label: "Age group", Options: []string{YoungInfant, Child}, Required: true},
			{Name: "notes", Label: "Notes"},
		},
		Sections: []schema.Section{
			{
				Name:  "young_infant",
				Label: "Sick young infant",
				Rule:  schema.Eq(AgeGroup, YoungInfant),
				Items: []schema.Item{
					item("check_feeding", "Checks for difficulty feeding"),
					item("count_breaths", "Counts breaths in one minute"),
					item("measure_temperature", "Measures axillary temperature"),
					item("check_umbilicus", "Looks at the umbilicus"),
					item("check_jaundice", "Looks for jaundice"),
				},
				Choices: []schema.Choice{
					{
						Key:   "classification",
						Label: "Classification",
						Options: []schema.Option{
							option("serious_infection", "Possible serious bacterial infection"),
							option("local_infection", "Local bacterial infection"),
							option("jaundice", "Jaundice"),
							option("no_infection", "Infection unlikely"),
						},
					},
				},
			},
			{
				Name:  "danger_signs",
				Label: "General danger signs",
				Rule:  schema.Eq(AgeGroup, Child),
				Items: []schema.Item{
					item("ask_drink", "Asks if the child is able to drink or breastfeed"),
					item("ask_vomit", "Asks if the child vomits everything"),
					item("ask_convulsions", "Asks about convulsions"),
					item("check_lethargic", "Checks if the child is lethargic or unconscious"),
				},
			},
			{
				Name:     "symptoms",
				Label:    "Main symptoms reported",
				Rule:     schema.Eq(AgeGroup, Child),
				Unscored: true,
				Items: []schema.Item{
					item("cough_present", "Does the child have cough or difficult breathing?"),
					item("diarrhea_present", "Does the child have diarrhoea?"),
					item("fever_present", "Does the child have fever?"),
				},
			},
			symptomSection("cough", "Cough or difficult breathing", "cough_present",
				[]schema.Item{
					item("ask_duration", "Asks for how long"),
					item("count_breaths", "Counts breaths in one minute"),
					item("check_indrawing", "Looks for chest indrawing"),
					item("check_stridor", "Listens for stridor"),
				},
				[]schema.Option{
					option("severe_pneumonia", "Severe pneumonia or very severe disease"),
					option("pneumonia", "Pneumonia"),
					option("no_pneumonia", "Cough or cold"),
				},
			),
			symptomSection("diarrhea", "Diarrhoea", "diarrhea_present",
				[]schema.Item{
					item("ask_duration", "Asks for how long"),
					item("ask_blood", "Asks about blood in the stool"),
					item("check_sunken_eyes", "Looks for sunken eyes"),
					item("offer_fluid", "Offers the child fluid"),
					item("skin_pinch", "Pinches the skin of the abdomen"),
				},
				[]schema.Option{
					option("severe_dehydration", "Severe dehydration"),
					option("some_dehydration", "Some dehydration"),
					option("no_dehydration", "No dehydration"),
					option("dysentery", "Dysentery"),
				},
			),
			symptomSection("fever", "Fever", "fever_present",
				[]schema.Item{
					item("ask_duration", "Asks for how long"),
					item("check_stiff_neck", "Looks for stiff neck"),
					item("malaria_test", "Performs a malaria test"),
				},
				[]schema.Option{
					option("very_severe_febrile", "Very severe febrile disease"),
					option("malaria", "Malaria"),
					option("fever_no_malaria", "Fever, no malaria"),
				},
			),
			{
				Name:  "treatment",
				Label: "Treatment",
				Rule:  schema.Answered("", AgeGroup),
				Items: []schema.Item{
					item("identify_treatment", "Identifies the correct treatment"),
					item("explain_dosing", "Explains dosing to the caregiver"),
					item("check_understanding", "Checks the caregiver's understanding"),
				},
				Groups: []schema.Group{
					{
						Name:  "referral",
						Label: "Urgent referral",
						Rule: schema.Any(
							schema.Checked("young_infant", "classification", "serious_infection"),
							schema.Checked("cough", "classification", "severe_pneumonia"),
							schema.Checked("diarrhea", "classification", "severe_dehydration"),
							schema.Checked("fever", "classification", "very_severe_febrile"),
						),
						Items: []schema.Item{
							item("pre_referral_dose", "Gives the first dose of pre-referral treatment"),
							item("referral_note", "Writes a referral note"),
						},
					},
				},
			},
			{
				Name:  "counselling",
				Label: "Counselling",
				Rule:  schema.Answered("", AgeGroup),
				Items: []schema.Item{
					item("feeding_advice", "Gives feeding advice"),
					item("when_to_return", "Advises when to return immediately"),
					{Key: "follow_up", Label: "Sets a follow-up visit", AllowNA: true},
				},
			},
		},
	}
}

// symptomSection builds a symptom assessment that only applies when the symptom is present.
// The supervisor judgment only applies once a classification has been selected.
func symptomSection(name, label, presentKey string, items []schema.Item, classes []schema.Option) schema.Section {
	return schema.Section{
		Name:   name,
		Label:  label,
		Rule:   schema.AnswerEq("symptoms", presentKey, schema.AnswerYes),
		Hidden: schema.ResetClear,
		Items:  items,
		Choices: []schema.Choice{
			{Key: "classification", Label: "Classification", Options: classes},
		},
		Groups: []schema.Group{
			{
				Name:  "supervisor",
				Label: "Supervisor review",
				Rule:  schema.Answered(name, "classification"),
				Items: []schema.Item{
					item("supervisor_correct", "Supervisor agrees with the classification"),
				},
			},
		},
	}
}
