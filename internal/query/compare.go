package query

import (
	"slices"
	"strings"

	"listing/internal/domain/models"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

// SortSpec selects the single active sort field. An invalid field keeps the
// input order.
type SortSpec struct {
	Field     models.Field `json:"field"`
	Direction Direction    `json:"direction"`
}

// DefaultSort orders by id ascending.
func DefaultSort() SortSpec {
	return SortSpec{Field: models.FieldID, Direction: Asc}
}

// Toggle applies a header click: the active field flips direction, any
// other field becomes active in ascending order.
func (s SortSpec) Toggle(f models.Field) SortSpec {
	if f == s.Field {
		if s.Direction == Desc {
			return SortSpec{Field: f, Direction: Asc}
		}
		return SortSpec{Field: f, Direction: Desc}
	}
	return SortSpec{Field: f, Direction: Asc}
}

// Compare returns -1, 0 or 1 ordering a before, with or after b.
func Compare(a, b models.Record, s SortSpec) int {
	if !s.Field.Valid() {
		return 0
	}
	c := s.Field.Compare(a, b)
	if s.Direction == Desc {
		return -c
	}
	return c
}

// Sort returns a stably sorted copy of records; ties keep their input order.
func Sort(records []models.Record, s SortSpec) []models.Record {
	out := slices.Clone(records)
	sortInPlace(out, s)
	return out
}

func sortInPlace(records []models.Record, s SortSpec) {
	if !s.Field.Valid() {
		return
	}
	slices.SortStableFunc(records, func(a, b models.Record) int {
		return Compare(a, b, s)
	})
}
