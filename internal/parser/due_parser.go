package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is how due dates are stored
const DateLayout = "2006-01-02"

var (
	isoDateRegex    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex   = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks)$`)
	plusDigitsRegex = regexp.MustCompile(`^\+(\d+)(d|w)$`)
)

// ParseDueDate parses various due date formats relative to the current day.
// Supported formats:
// - yyyy-mm-dd (e.g., "2025-12-15")
// - dd/mm/yyyy (e.g., "15/12/2025")
// - today, tomorrow
// - X days / X weeks (e.g., "3 days", "3days", "2w", "+5d")
func ParseDueDate(input string) (*string, error) {
	return ParseDueDateAt(input, time.Now())
}

// ParseDueDateAt is ParseDueDate with an explicit current time
func ParseDueDateAt(input string, now time.Time) (*string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return formatDate(today), nil
	case "tomorrow":
		return formatDate(today.AddDate(0, 0, 1)), nil
	}

	if m := isoDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := slashDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[3], m[2], m[1])
	}

	if due, err := parseRelative(input, today); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days or X weeks")
}

// buildDate validates the parts and returns the stored form
func buildDate(yearStr, monthStr, dayStr string) (*string, error) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	// Validate date ranges
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if year < 1970 || year > 2100 {
		return nil, fmt.Errorf("year must be between 1970 and 2100")
	}

	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if date is valid (handles leap years, etc.)
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) {
		return nil, fmt.Errorf("invalid date")
	}

	return formatDate(dueDate), nil
}

// parseRelative parses "3 days", "2weeks", "+5d" and similar
func parseRelative(input string, today time.Time) (*string, error) {
	var amountStr, unit string
	if m := relativeRegex.FindStringSubmatch(input); m != nil {
		amountStr, unit = m[1], m[2]
	} else if m := plusDigitsRegex.FindStringSubmatch(input); m != nil {
		amountStr, unit = m[1], m[2]
	} else {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	switch unit {
	case "d", "day", "days":
		if amount < 0 || amount > 365 { // Max 1 year in days
			return nil, fmt.Errorf("days must be between 0 and 365")
		}
		return formatDate(today.AddDate(0, 0, amount)), nil
	default:
		if amount < 0 || amount > 52 { // Max 1 year in weeks
			return nil, fmt.Errorf("weeks must be between 0 and 52")
		}
		return formatDate(today.AddDate(0, 0, amount*7)), nil
	}
}

func formatDate(t time.Time) *string {
	s := t.Format(DateLayout)
	return &s
}

// FormatDueDate formats a stored due date for display
func FormatDueDate(dueDate *string) string {
	return FormatDueDateAt(dueDate, time.Now())
}

// FormatDueDateAt is FormatDueDate with an explicit current time
func FormatDueDateAt(dueDate *string, now time.Time) string {
	if dueDate == nil || *dueDate == "" {
		return ""
	}

	due, err := time.ParseInLocation(DateLayout, *dueDate, now.Location())
	if err != nil {
		// Not written by this parser; show as is.
		return *dueDate
	}

	// Calculate calendar days difference
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(math.Round(due.Sub(today).Hours() / 24))

	// Always show the actual date to avoid confusion
	dateStr := due.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
