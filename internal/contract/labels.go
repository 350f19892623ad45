package contract

import (
	"github.com/fatih/color"
	"github.com/nfi-health/assess/schema"
)

// Score label constants.
const (
	ExcellentValue = "Excellent"
	GoodValue      = "Good"
	FairValue      = "Fair"
	PoorValue      = "Poor"
	NoScoreValue   = "-"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgCyan)
	FairColor      = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label for a section score, using the configured
// minimum percentages. This is the core logic used for CSV, JSON, and table printing.
// Sections without a scored item get NoScoreValue.
func GetPlainLabel(s schema.SectionScore, thresholds map[string]int) string {
	pct, ok := s.Percent()
	if !ok {
		return NoScoreValue
	}
	if thresholds == nil {
		thresholds = DefaultThresholds
	}
	switch {
	case pct >= thresholds[ExcellentLabel]:
		return ExcellentValue
	case pct >= thresholds[GoodLabel]:
		return GoodValue
	case pct >= thresholds[FairLabel]:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(s schema.SectionScore, thresholds map[string]int) string {
	text := GetPlainLabel(s, thresholds)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	case PoorValue:
		return PoorColor.Sprint(text)
	default:
		return text
	}
}
