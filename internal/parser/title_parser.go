package parser

import (
	"regexp"
	"strings"
)

// ParsedTask represents a task parsed from quick-add text
type ParsedTask struct {
	Text    string
	Tag     *string
	DueDate *string
	Errors  []string
}

var (
	tagRegex = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}_-]+)`)
	dueRegex = regexp.MustCompile(`(^|\s)due:(\S+)`)
)

// ParseText extracts metadata from task text using quick syntax
// Syntax: "Buy milk #errands due:tomorrow"
//
// A task carries a single tag, so a second #tag is reported as an error.
func ParseText(input string) ParsedTask {
	result := ParsedTask{
		Errors: []string{},
	}

	// Extract tag (#errands)
	tagMatches := tagRegex.FindAllStringSubmatch(input, -1)
	if len(tagMatches) > 0 {
		tag := tagMatches[0][2]
		result.Tag = &tag
		if len(tagMatches) > 1 {
			result.Errors = append(result.Errors, "Only one #tag is allowed per task")
		}
		input = tagRegex.ReplaceAllString(input, "$1")
	}

	// Extract due date (due:3days, due:15/12/2025, etc.)
	dueMatches := dueRegex.FindStringSubmatch(input)
	if len(dueMatches) > 2 {
		dueDate, err := ParseDueDate(dueMatches[2])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+dueMatches[2]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "$1")
	}

	// Clean up the text (remove extra spaces)
	result.Text = strings.Join(strings.Fields(input), " ")

	return result
}

// NormalizeTag trims a tag and drops a leading '#'. Empty tags become nil.
func NormalizeTag(tag string) *string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil
	}
	return &tag
}
