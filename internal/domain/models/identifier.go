package models

import (
	"cmp"
	"encoding/json"
	"strings"
)

// Identifier is a record or salon id. Sources send ids either as JSON
// numbers or as strings; Raw keeps the textual form used for display and
// facets, Num the numeric value when the id is numeric.
type Identifier struct {
	Raw     string
	Num     float64
	Numeric bool
}

func NumericID(v float64) Identifier {
	return Identifier{Raw: FormatNumber(v), Num: v, Numeric: true}
}

func TextID(s string) Identifier {
	return Identifier{Raw: s}
}

func (id Identifier) String() string {
	return id.Raw
}

// Compare orders numeric ids numerically, text ids by raw text, and every
// numeric id before every text id.
func (id Identifier) Compare(other Identifier) int {
	switch {
	case id.Numeric && other.Numeric:
		return cmp.Compare(id.Num, other.Num)
	case id.Numeric:
		return -1
	case other.Numeric:
		return 1
	default:
		return strings.Compare(id.Raw, other.Raw)
	}
}

func (id Identifier) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(FormatNumber(id.Num)), nil
	}
	return json.Marshal(id.Raw)
}

func (id *Identifier) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = coerceIdentifier(v)
	return nil
}
