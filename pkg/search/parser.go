package search

import (
	"strings"
)

// DocumentFilters holds the extracted filters and the remaining clean query.
type DocumentFilters struct {
	WithCheckboxes bool
	ExportedOnly   bool
	Title          string // remaining text, matched against the title
}

// ParseQuery extracts slash commands from the raw list query.
// Supported:
// /boxes OR /has:checkbox -> only documents containing checkboxes
// /exported -> only documents exported at least once
// <text> -> remaining text is the title query
func ParseQuery(raw string) DocumentFilters {
	filters := DocumentFilters{}
	var cleanParts []string

	for _, part := range strings.Fields(raw) {
		switch strings.ToLower(part) {
		case "/boxes", "/has:checkbox":
			filters.WithCheckboxes = true
		case "/exported":
			filters.ExportedOnly = true
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.Title = strings.Join(cleanParts, " ")
	return filters
}
