// Package facet derives the distinct value lists used to build filter
// choices. Facets are always computed from the full dataset so that the
// options never shrink while other filters are active.
package facet

import (
	"maps"
	"slices"

	"listing/internal/domain/models"
)

// Distinct returns the stringified distinct values of field, sorted
// lexicographically. Numeric-looking values sort as strings ("10" < "5").
func Distinct(records []models.Record, field models.Field) []string {
	if !field.Valid() {
		return []string{}
	}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[field.Text(r)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
