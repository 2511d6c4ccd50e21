package query

import (
	"strings"

	"golang.org/x/text/cases"

	"listing/internal/domain/models"
)

// Matches reports whether r passes the free-text search and every active
// criterion.
func Matches(r models.Record, search string, c Criteria) bool {
	return newMatcher(search, c).match(r)
}

// matcher is a compiled form of (search, criteria) that is reused across the
// records of one derivation. It is not shared between goroutines.
type matcher struct {
	caser       cases.Caser
	search      string
	sets        []compiledSet
	comparisons []ComparisonCriterion
	ranges      []RangeCriterion
}

type compiledSet struct {
	field   models.Field
	allowed map[string]struct{}
}

func newMatcher(search string, c Criteria) *matcher {
	m := &matcher{caser: cases.Fold()}
	if search != "" {
		m.search = m.caser.String(search)
	}
	for _, s := range c.Sets {
		if !s.active() {
			continue
		}
		allowed := make(map[string]struct{}, len(s.Values))
		for _, v := range s.Values {
			allowed[v] = struct{}{}
		}
		m.sets = append(m.sets, compiledSet{field: s.Field, allowed: allowed})
	}
	for _, cmp := range c.Comparisons {
		if cmp.active() {
			m.comparisons = append(m.comparisons, cmp)
		}
	}
	for _, r := range c.Ranges {
		if r.active() {
			m.ranges = append(m.ranges, r)
		}
	}
	return m
}

func (m *matcher) match(r models.Record) bool {
	return m.matchSearch(r) && m.matchCriteria(r)
}

func (m *matcher) matchSearch(r models.Record) bool {
	if m.search == "" {
		return true
	}
	for _, f := range models.SearchFields() {
		if strings.Contains(m.caser.String(f.Text(r)), m.search) {
			return true
		}
	}
	return false
}

func (m *matcher) matchCriteria(r models.Record) bool {
	for _, s := range m.sets {
		if _, ok := s.allowed[s.field.Text(r)]; !ok {
			return false
		}
	}
	for _, c := range m.comparisons {
		if !c.Op.apply(c.Field.Number(r), *c.Threshold) {
			return false
		}
	}
	for _, rc := range m.ranges {
		v := rc.Field.Number(r)
		if v < *rc.Min || v > *rc.Max {
			return false
		}
	}
	return true
}
