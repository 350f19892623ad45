package catalog

import "github.com/nfi-health/assess/schema"

// Branch selectors of the EENC checklist.
const (
	BreathingStatus = "breathing_status"
	ChestRise       = "chest_rise"
)

// EENC returns the Essential Early Newborn Care skills checklist.
// The breathing status selector switches between the normal breathing and resuscitation steps.
func EENC() *schema.Checklist {
	return &schema.Checklist{
		ID:    EENCID,
		Title: "Essential Early Newborn Care",
		Fields: []schema.Field{
			{Name: "session_date", Label: "Session date"},
			{Name: BreathingStatus, Label: "Is the baby breathing?", Options: []string{"yes", "no"}, Required: true},
			{Name: ChestRise, Label: "Does the chest rise with ventilation?", Options: []string{"yes", "no"}},
			{Name: "notes", Label: "Notes"},
		},
		Sections: []schema.Section{
			{
				Name:  "prep",
				Label: "Preparation for birth",
				Items: []schema.Item{
					item("identify_helper", "Identifies a helper and reviews the emergency plan"),
					item("prepare_area", "Prepares a warm, clean area for delivery"),
					item("wash_hands", "Washes hands and puts on gloves"),
					item("check_bag_mask", "Checks the bag and mask are functional"),
				},
			},
			{
				Name:  "drying",
				Label: "Immediate drying",
				Items: []schema.Item{
					item("call_birth_time", "Calls out the time of birth"),
					item("dry_thoroughly", "Dries the baby thoroughly within 5 seconds"),
					item("remove_wet_cloth", "Removes the wet cloth"),
					item("skin_to_skin", "Places the baby in skin-to-skin contact"),
				},
			},
			{
				Name:  "normal_breathing",
				Label: "Baby breathing normally",
				Rule:  schema.Eq(BreathingStatus, "yes"),
				Items: []schema.Item{
					item("delay_cord_clamping", "Waits 1-3 minutes before clamping the cord"),
					item("clamp_cut_cord", "Clamps and cuts the cord correctly"),
					item("breastfeeding_cues", "Helps the mother recognise feeding cues"),
				},
			},
			{
				Name:  "resuscitation",
				Label: "Baby not breathing",
				Rule:  schema.Eq(BreathingStatus, "no"),
				Items: []schema.Item{
					item("clamp_cut_immediately", "Clamps and cuts the cord immediately"),
					item("move_to_area", "Moves the baby to the resuscitation area"),
					item("position_head", "Positions the head slightly extended"),
					item("ventilate", "Starts bag and mask ventilation within 1 minute"),
					item("check_chest_rise", "Checks for chest rise"),
				},
				Groups: []schema.Group{
					{
						Name:  "no_chest_rise",
						Label: "No chest rise",
						Rule:  schema.Eq(ChestRise, "no"),
						Items: []schema.Item{
							item("reapply_mask", "Reapplies the mask and repositions the head"),
							item("call_for_help", "Calls for advanced help"),
						},
					},
				},
			},
			{
				Name:  "post_birth",
				Label: "Care after birth",
				Rule:  schema.Answered("", BreathingStatus),
				Items: []schema.Item{
					item("eye_care", "Gives eye care"),
					item("vitamin_k", "Gives vitamin K"),
					item("weigh_baby", "Weighs the baby"),
					{Key: "vaccination", Label: "Gives birth-dose vaccines", AllowNA: true},
				},
			},
		},
	}
}
