package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"listing/internal/domain"
	"listing/internal/domain/models"
)

var errNotNumber = errors.New("not a finite number")

// Request is the textual form of a State as it arrives from query strings,
// JSON bodies or command-line flags.
//
//	in:    "salon_name=Foo"     (repeat to allow several values)
//	cmp:   "reviews>=10"
//	range: "age=20..30"
//	sort:  "reviews" or "-reviews"
type Request struct {
	Search   string   `json:"q"`
	In       []string `json:"in"`
	Cmp      []string `json:"cmp"`
	Range    []string `json:"range"`
	Sort     string   `json:"sort"`
	Order    string   `json:"order"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// Limits bounds page sizes coming from clients.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// RequestFromValues reads a Request from URL query values. Malformed page
// numbers are reported and replaced by defaults.
func RequestFromValues(v url.Values) (Request, []error) {
	var warns []error
	req := Request{
		Search: v.Get("q"),
		In:     v["in"],
		Cmp:    v["cmp"],
		Range:  v["range"],
		Sort:   v.Get("sort"),
		Order:  v.Get("order"),
	}
	if s := strings.TrimSpace(v.Get("page")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			warns = append(warns, domain.InvalidCriterionError{Criterion: "page=" + s, Reason: "not an integer"})
		} else {
			req.Page = n
		}
	}
	if s := strings.TrimSpace(v.Get("page_size")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			warns = append(warns, domain.InvalidCriterionError{Criterion: "page_size=" + s, Reason: "not an integer"})
		} else {
			req.PageSize = n
		}
	}
	return req, warns
}

// State turns the request into a query State. Every malformed part is
// dropped and reported; the remaining parts still apply.
func (r Request) State(l Limits) (State, []error) {
	var warns []error
	st := State{Search: r.Search}

	setIdx := map[models.Field]int{}
	for _, expr := range r.In {
		c, err := ParseSet(expr)
		if err != nil {
			warns = append(warns, err)
			continue
		}
		if i, ok := setIdx[c.Field]; ok {
			st.Criteria.Sets[i].Values = append(st.Criteria.Sets[i].Values, c.Values...)
			continue
		}
		setIdx[c.Field] = len(st.Criteria.Sets)
		st.Criteria.Sets = append(st.Criteria.Sets, c)
	}
	for _, expr := range r.Cmp {
		c, err := ParseComparison(expr)
		if err != nil {
			warns = append(warns, err)
			continue
		}
		st.Criteria.Comparisons = append(st.Criteria.Comparisons, c)
	}
	for _, expr := range r.Range {
		c, err := ParseRange(expr)
		if err != nil {
			warns = append(warns, err)
			continue
		}
		st.Criteria.Ranges = append(st.Criteria.Ranges, c)
	}

	sort, err := ParseSort(r.Sort)
	if err != nil {
		warns = append(warns, err)
	}
	if strings.TrimSpace(r.Order) != "" {
		if d, ok := ParseDirection(r.Order); ok {
			sort.Direction = d
		} else {
			warns = append(warns, domain.InvalidCriterionError{Criterion: "order=" + r.Order, Reason: "expected asc or desc"})
		}
	}
	st.Sort = sort

	page, pageWarns := l.page(r.Page, r.PageSize)
	st.Page = page
	warns = append(warns, pageWarns...)
	return st, warns
}

func (l Limits) page(index, size int) (PageSpec, []error) {
	var warns []error
	switch {
	case size == 0:
		size = l.DefaultPageSize
	case size < 0:
		warns = append(warns, domain.InvalidCriterionError{
			Criterion: "page_size=" + strconv.Itoa(size),
			Reason:    "must be positive",
		})
		size = l.DefaultPageSize
	}
	if l.MaxPageSize > 0 && size > l.MaxPageSize {
		size = l.MaxPageSize
	}
	if index < 1 {
		index = 1
	}
	return PageSpec{Size: size, Index: index}, warns
}

func splitField(expr string) (string, string, bool) {
	name, value, ok := strings.Cut(expr, "=")
	return strings.TrimSpace(name), value, ok
}

// ParseSet parses "field=value".
func ParseSet(expr string) (SetCriterion, error) {
	name, value, ok := splitField(expr)
	if !ok {
		return SetCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "expected field=value"}
	}
	f, ok := models.ParseField(name)
	if !ok {
		return SetCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "unknown field"}
	}
	return SetCriterion{Field: f, Values: []string{value}}, nil
}

// ParseComparison parses "field<op>value", e.g. "reviews>=10". An empty
// value yields an inactive criterion rather than an error.
func ParseComparison(expr string) (ComparisonCriterion, error) {
	s := strings.TrimSpace(expr)
	end := 0
	for end < len(s) && isNameByte(s[end]) {
		end++
	}
	name, rest := s[:end], strings.TrimSpace(s[end:])

	f, ok := models.ParseField(name)
	if !ok {
		return ComparisonCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "unknown field"}
	}
	if !f.Numeric() {
		return ComparisonCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "field is not numeric"}
	}

	var op Operator
	for _, candidate := range operators {
		if strings.HasPrefix(rest, string(candidate)) {
			op = candidate
			break
		}
	}
	if op == "" {
		return ComparisonCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "unknown operator"}
	}

	c := ComparisonCriterion{Field: f, Op: op}
	value := strings.TrimSpace(rest[len(op):])
	if value == "" {
		return c, nil
	}
	v, ok := models.ParseNumber(value)
	if !ok {
		return ComparisonCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "threshold is not a number"}
	}
	c.Threshold = &v
	return c, nil
}

// ParseRange parses "field=min..max". A missing bound leaves the range
// inactive.
func ParseRange(expr string) (RangeCriterion, error) {
	name, bounds, ok := splitField(expr)
	if !ok {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "expected field=min..max"}
	}
	f, ok := models.ParseField(name)
	if !ok {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "unknown field"}
	}
	if !f.Numeric() {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "field is not numeric"}
	}
	lo, hi, ok := strings.Cut(bounds, "..")
	if !ok {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "expected min..max"}
	}

	c := RangeCriterion{Field: f}
	var err error
	if c.Min, err = parseBound(lo); err != nil {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "min is not a number"}
	}
	if c.Max, err = parseBound(hi); err != nil {
		return RangeCriterion{}, domain.InvalidCriterionError{Criterion: expr, Reason: "max is not a number"}
	}
	return c, nil
}

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, ok := models.ParseNumber(s)
	if !ok {
		return nil, errNotNumber
	}
	return &v, nil
}

// ParseSort parses "field" (ascending) or "-field" (descending). An empty
// string selects the default sort; an unknown field keeps input order and
// is reported.
func ParseSort(expr string) (SortSpec, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return DefaultSort(), nil
	}
	dir := Asc
	switch s[0] {
	case '-':
		dir, s = Desc, s[1:]
	case '+':
		s = s[1:]
	}
	f, ok := models.ParseField(s)
	if !ok {
		return SortSpec{Direction: dir}, domain.InvalidCriterionError{Criterion: "sort=" + expr, Reason: "unknown field"}
	}
	return SortSpec{Field: f, Direction: dir}, nil
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
