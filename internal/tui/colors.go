package tui

// Color constants for the listr theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Task text, user input
	ColorSecondaryText = "#B1B8C7" // Tags, due dates, counters
	ColorDisabledText  = "#6D7383" // Archived tasks
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Ids, headers
	ColorAccentBright = "#A78BFA" // Selection, commands in hints

	// State Colors
	ColorError   = "#EF4444" // Failures
	ColorSuccess = "#22C55E" // Done tasks, confirmations
	ColorWarning = "#F59E0B" // Overdue
)
