package query

import (
	"fmt"
	"math"

	"listing/internal/domain"
	"listing/internal/domain/models"
)

// Operator is a numeric comparison operator.
type Operator string

const (
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpEqual        Operator = "="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
)

// operators is ordered longest first so that prefix parsing picks ">=" over ">".
var operators = []Operator{OpGreaterEqual, OpLessEqual, OpGreater, OpLess, OpEqual}

func (o Operator) Valid() bool {
	switch o {
	case OpGreater, OpLess, OpEqual, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

func (o Operator) apply(v, threshold float64) bool {
	switch o {
	case OpGreater:
		return v > threshold
	case OpLess:
		return v < threshold
	case OpEqual:
		return v == threshold
	case OpGreaterEqual:
		return v >= threshold
	case OpLessEqual:
		return v <= threshold
	default:
		return true
	}
}

// SetCriterion keeps records whose stringified field value is one of Values.
// An empty Values list imposes no constraint.
type SetCriterion struct {
	Field  models.Field `json:"field"`
	Values []string     `json:"values"`
}

func (c SetCriterion) active() bool {
	return c.Field.Valid() && len(c.Values) > 0
}

func (c SetCriterion) validate() error {
	if !c.Field.Valid() && len(c.Values) > 0 {
		return domain.InvalidCriterionError{Criterion: "in", Reason: "unknown field"}
	}
	return nil
}

// ComparisonCriterion keeps records where field <Op> Threshold. A nil, zero
// or non-finite threshold leaves the criterion inactive: an untouched numeric
// input must not filter anything out.
type ComparisonCriterion struct {
	Field     models.Field `json:"field"`
	Op        Operator     `json:"op"`
	Threshold *float64     `json:"threshold,omitempty"`
}

func (c ComparisonCriterion) active() bool {
	return c.Field.Numeric() && c.Op.Valid() && finite(c.Threshold) && *c.Threshold != 0
}

func (c ComparisonCriterion) validate() error {
	name := fmt.Sprintf("%s%s", c.Field, c.Op)
	switch {
	case !c.Field.Valid():
		return domain.InvalidCriterionError{Criterion: name, Reason: "unknown field"}
	case !c.Field.Numeric():
		return domain.InvalidCriterionError{Criterion: name, Reason: "field is not numeric"}
	case c.Op != "" && !c.Op.Valid():
		return domain.InvalidCriterionError{Criterion: name, Reason: "unknown operator"}
	}
	return nil
}

// RangeCriterion keeps records with Min <= field <= Max. Both bounds must be
// set and finite for the criterion to apply.
type RangeCriterion struct {
	Field models.Field `json:"field"`
	Min   *float64     `json:"min,omitempty"`
	Max   *float64     `json:"max,omitempty"`
}

func (c RangeCriterion) active() bool {
	return c.Field.Numeric() && finite(c.Min) && finite(c.Max)
}

func (c RangeCriterion) validate() error {
	name := c.Field.String() + "=.."
	switch {
	case !c.Field.Valid():
		return domain.InvalidCriterionError{Criterion: name, Reason: "unknown field"}
	case !c.Field.Numeric():
		return domain.InvalidCriterionError{Criterion: name, Reason: "field is not numeric"}
	}
	return nil
}

// Criteria is the full set of active filters. Records must pass every
// active criterion.
type Criteria struct {
	Sets        []SetCriterion        `json:"sets,omitempty"`
	Comparisons []ComparisonCriterion `json:"comparisons,omitempty"`
	Ranges      []RangeCriterion      `json:"ranges,omitempty"`
}

// Validate reports the criteria that will be ignored. It never changes how
// the criteria are evaluated.
func (c Criteria) Validate() []error {
	var errs []error
	for _, s := range c.Sets {
		if err := s.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, cmp := range c.Comparisons {
		if err := cmp.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range c.Ranges {
		if err := r.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ActiveCount is the number of criteria that constrain the result.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, s := range c.Sets {
		if s.active() {
			n++
		}
	}
	for _, cmp := range c.Comparisons {
		if cmp.active() {
			n++
		}
	}
	for _, r := range c.Ranges {
		if r.active() {
			n++
		}
	}
	return n
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Float returns a pointer to v, for building thresholds and bounds.
func Float(v float64) *float64 {
	return &v
}
