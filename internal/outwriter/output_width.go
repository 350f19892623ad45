package outwriter

import (
	"os"

	"github.com/nfi-health/assess/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override from config, the detected terminal width,
// or a conservative default when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTableTextWidth calculates the maximum width of the free-text column of a table
// given the space taken by its fixed columns.
func getMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	// Reserve generous space for table borders, separators, and padding
	available := getTerminalWidth(cfg) - fixedWidth - 20
	if available < 15 {
		// Minimum reasonable text width
		return 15
	}
	if available > 70 {
		// Maximum text width to prevent overly wide tables
		return 70
	}
	return available
}
