package application

import (
	"fmt"
	"strings"

	"locus/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "itemID" -> "item ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"itemID":      "item ID",
		"expr":        "expression",
		"destination": "destination",
		"alias":       "alias",
		"title":       "title",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateItemID checks that value is a canonical item ID
func ValidateItemID(fieldName, value string) (domain.ItemID, error) {
	id, err := domain.ParseItemID(value)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s, got: %s", formatFieldName(fieldName), value),
		}
	}
	return id, nil
}

// ValidateSectionParent rejects placements that cannot hold children: a
// section index needs an anchor, and an item cannot be placed under itself.
func ValidateSectionParent(fieldName string, p domain.Placement, self domain.ItemID) error {
	if p.IsZero() {
		return &ValidationError{Field: fieldName, Message: "placement is required"}
	}
	if h, ok := p.Head().(domain.ItemHead); ok && self != "" && h.ID == self {
		return &ValidationError{Field: fieldName, Message: "an item cannot be placed under itself"}
	}
	return nil
}
