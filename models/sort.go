package models

import "strings"

// Sort criteria accepted by the repositories and services.
const (
	SortByTitle       = "title"
	SortByDescription = "description"
	SortByDate        = "date"
)

// NormalizeCriterion maps a user-facing label such as "Title" to its
// criterion name.
func NormalizeCriterion(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
