package models

import (
	"cmp"
	"strings"
)

// FieldKind is the semantic kind of a record field.
type FieldKind uint8

const (
	KindInvalid FieldKind = iota
	KindIdentifier
	KindText
	KindNumber
)

func (k FieldKind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "invalid"
	}
}

// Field names one record attribute. Every filter, sort and facet goes
// through the accessor table below instead of looking fields up by name.
type Field uint8

const (
	FieldInvalid Field = iota
	FieldID
	FieldSalonID
	FieldName
	FieldImg
	FieldStyle
	FieldSalonName
	FieldScore
	FieldReviews
	FieldSKR
	FieldHJ
	FieldF
	FieldNN
	FieldNS
	FieldAge
	FieldHeight
	FieldBust
	FieldWaist
	FieldHip
	FieldCup

	fieldCount
)

type fieldSpec struct {
	name string
	kind FieldKind
	text func(Record) string
	num  func(Record) float64
	id   func(Record) Identifier
}

func textField(name string, get func(Record) string) fieldSpec {
	return fieldSpec{name: name, kind: KindText, text: get}
}

func numberField(name string, get func(Record) float64) fieldSpec {
	return fieldSpec{
		name: name,
		kind: KindNumber,
		text: func(r Record) string { return FormatNumber(get(r)) },
		num:  get,
	}
}

func identifierField(name string, get func(Record) Identifier) fieldSpec {
	return fieldSpec{
		name: name,
		kind: KindIdentifier,
		text: func(r Record) string { return get(r).Raw },
		num:  func(r Record) float64 { return get(r).Num },
		id:   get,
	}
}

var fieldTable = [fieldCount]fieldSpec{
	FieldID:        identifierField("id", func(r Record) Identifier { return r.ID }),
	FieldSalonID:   identifierField("salon_id", func(r Record) Identifier { return r.SalonID }),
	FieldName:      textField("name", func(r Record) string { return r.Name }),
	FieldImg:       textField("img", func(r Record) string { return r.Img }),
	FieldStyle:     textField("style", func(r Record) string { return r.Style }),
	FieldSalonName: textField("salon_name", func(r Record) string { return r.SalonName }),
	FieldScore:     numberField("score", func(r Record) float64 { return r.Score }),
	FieldReviews:   numberField("reviews", func(r Record) float64 { return r.Reviews }),
	FieldSKR:       numberField("skr", func(r Record) float64 { return r.SKR }),
	FieldHJ:        numberField("hj", func(r Record) float64 { return r.HJ }),
	FieldF:         numberField("f", func(r Record) float64 { return r.F }),
	FieldNN:        numberField("nn", func(r Record) float64 { return r.NN }),
	FieldNS:        numberField("ns", func(r Record) float64 { return r.NS }),
	FieldAge:       numberField("age", func(r Record) float64 { return r.Age }),
	FieldHeight:    numberField("height", func(r Record) float64 { return r.Height }),
	FieldBust:      numberField("bust", func(r Record) float64 { return r.Bust }),
	FieldWaist:     numberField("waist", func(r Record) float64 { return r.Waist }),
	FieldHip:       numberField("hip", func(r Record) float64 { return r.Hip }),
	FieldCup:       textField("cup", func(r Record) string { return r.Cup }),
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := FieldID; f < fieldCount; f++ {
		m[fieldTable[f].name] = f
	}
	return m
}()

// ParseField resolves a JSON field name such as "salon_name".
func ParseField(name string) (Field, bool) {
	f, ok := fieldsByName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Fields lists every valid field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount-1)
	for f := FieldID; f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// SearchFields are the text fields matched by the free-text search.
func SearchFields() []Field {
	return []Field{FieldName, FieldSalonName}
}

func (f Field) Valid() bool {
	return f > FieldInvalid && f < fieldCount
}

func (f Field) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return fieldTable[f].name
}

func (f Field) Kind() FieldKind {
	if !f.Valid() {
		return KindInvalid
	}
	return fieldTable[f].kind
}

// Numeric reports whether comparison and range filters apply to f.
func (f Field) Numeric() bool {
	k := f.Kind()
	return k == KindNumber || k == KindIdentifier
}

// Text returns the stringified value of f, the form used by facets and
// set-membership filters.
func (f Field) Text(r Record) string {
	if !f.Valid() {
		return ""
	}
	return fieldTable[f].text(r)
}

// Number returns the numeric value of f; text fields yield 0.
func (f Field) Number(r Record) float64 {
	if !f.Numeric() {
		return 0
	}
	return fieldTable[f].num(r)
}

// Compare orders a and b by the native ordering of f.
func (f Field) Compare(a, b Record) int {
	switch f.Kind() {
	case KindText:
		return strings.Compare(fieldTable[f].text(a), fieldTable[f].text(b))
	case KindNumber:
		return cmp.Compare(fieldTable[f].num(a), fieldTable[f].num(b))
	case KindIdentifier:
		return fieldTable[f].id(a).Compare(fieldTable[f].id(b))
	default:
		return 0
	}
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
