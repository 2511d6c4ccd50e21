package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotObject = errors.New("record is not a JSON object")

// Record is one service-provider entry of the listing dataset.
type Record struct {
	ID        Identifier `json:"id"`
	SalonID   Identifier `json:"salon_id"`
	Name      string     `json:"name"`
	Img       string     `json:"img"`
	Style     string     `json:"style"`
	SalonName string     `json:"salon_name"`
	Score     float64    `json:"score"`
	Reviews   float64    `json:"reviews"`

	// service metrics, percent values
	SKR float64 `json:"skr"`
	HJ  float64 `json:"hj"`
	F   float64 `json:"f"`
	NN  float64 `json:"nn"`
	NS  float64 `json:"ns"`

	Age    float64 `json:"age"`
	Height float64 `json:"height"`
	Bust   float64 `json:"bust"`
	Waist  float64 `json:"waist"`
	Hip    float64 `json:"hip"`
	Cup    string  `json:"cup"`
}

// UnmarshalJSON decodes a record with best-effort coercion: missing numbers
// become 0, missing text becomes "", numbers sent as strings are parsed and
// unknown keys are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return errNotObject
	}
	*r = RecordFromMap(raw)
	return nil
}

// RecordFromMap coerces loosely typed values (decoded JSON or scanned SQL
// columns) into a Record.
func RecordFromMap(raw map[string]any) Record {
	return Record{
		ID:        coerceIdentifier(raw["id"]),
		SalonID:   coerceIdentifier(raw["salon_id"]),
		Name:      coerceText(raw["name"]),
		Img:       coerceText(raw["img"]),
		Style:     coerceText(raw["style"]),
		SalonName: coerceText(raw["salon_name"]),
		Score:     coerceNumber(raw["score"]),
		Reviews:   coerceNumber(raw["reviews"]),
		SKR:       coerceNumber(raw["skr"]),
		HJ:        coerceNumber(raw["hj"]),
		F:         coerceNumber(raw["f"]),
		NN:        coerceNumber(raw["nn"]),
		NS:        coerceNumber(raw["ns"]),
		Age:       coerceNumber(raw["age"]),
		Height:    coerceNumber(raw["height"]),
		Bust:      coerceNumber(raw["bust"]),
		Waist:     coerceNumber(raw["waist"]),
		Hip:       coerceNumber(raw["hip"]),
		Cup:       coerceText(raw["cup"]),
	}
}

// FormatNumber renders a number in its shortest decimal form ("10", "4.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses a finite decimal number; blanks, NaN and infinities
// are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		if f, ok := ParseNumber(t.String()); ok {
			return FormatNumber(f)
		}
		return t.String()
	case float64:
		return FormatNumber(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, _ := ParseNumber(t.String())
		return f
	case string:
		f, _ := ParseNumber(t)
		return f
	case []byte:
		f, _ := ParseNumber(string(t))
		return f
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func coerceIdentifier(v any) Identifier {
	switch t := v.(type) {
	case nil:
		return NumericID(0)
	case json.Number:
		if f, ok := ParseNumber(t.String()); ok {
			return NumericID(f)
		}
		return TextID(t.String())
	case float64, int64, int:
		return NumericID(coerceNumber(t))
	case string:
		return identifierFromText(t)
	case []byte:
		return identifierFromText(string(t))
	default:
		return NumericID(0)
	}
}

func identifierFromText(s string) Identifier {
	if f, ok := ParseNumber(s); ok {
		return Identifier{Raw: s, Num: f, Numeric: true}
	}
	return TextID(s)
}
