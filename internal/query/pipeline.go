// Package query filters, sorts and pages an in-memory record dataset.
//
// Every derivation is a pure function of (records, State): the input slice
// is never modified and no state survives between calls.
package query

import (
	"slices"

	"listing/internal/domain/models"
)

// PageSpec selects a page. Index is 1-based; a Size of zero or less puts
// every filtered record on a single page.
type PageSpec struct {
	Size  int `json:"size"`
	Index int `json:"index"`
}

// PageCount is max(1, ceil(total/size)).
func (p PageSpec) PageCount(total int) int {
	size := p.effectiveSize(total)
	return max(1, (total+size-1)/size)
}

// Clamp moves Index into [1, pageCount].
func (p PageSpec) Clamp(pageCount int) PageSpec {
	p.Index = min(max(p.Index, 1), max(pageCount, 1))
	return p
}

// Next advances one page; it is a no-op on the last page.
func (p PageSpec) Next(pageCount int) PageSpec {
	p = p.Clamp(pageCount)
	if p.Index < pageCount {
		p.Index++
	}
	return p
}

// Prev goes back one page; it is a no-op on the first page.
func (p PageSpec) Prev(pageCount int) PageSpec {
	p = p.Clamp(pageCount)
	if p.Index > 1 {
		p.Index--
	}
	return p
}

func (p PageSpec) effectiveSize(total int) int {
	if p.Size > 0 {
		return p.Size
	}
	return max(total, 1)
}

// State is the transient query state of one listing screen.
type State struct {
	Search   string   `json:"q"`
	Criteria Criteria `json:"criteria"`
	Sort     SortSpec `json:"sort"`
	Page     PageSpec `json:"page"`
}

// View is the derived, ordered, paged result handed to presentation.
type View struct {
	Items       []models.Record `json:"items"`
	Total       int             `json:"total"`
	PageCount   int             `json:"pageCount"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
	DatasetSize int             `json:"datasetSize"`
	HasPrev     bool            `json:"hasPrev"`
	HasNext     bool            `json:"hasNext"`
}

// Filter returns the records passing search and criteria in input order.
func Filter(records []models.Record, search string, c Criteria) []models.Record {
	m := newMatcher(search, c)
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// DeriveView filters, stable-sorts and pages records.
func DeriveView(records []models.Record, st State) View {
	filtered := Filter(records, st.Search, st.Criteria)
	sortInPlace(filtered, st.Sort)
	return paginate(filtered, len(records), st.Page)
}

// paginate slices an already filtered and sorted sequence it owns.
func paginate(sorted []models.Record, datasetSize int, p PageSpec) View {
	total := len(sorted)
	size := p.effectiveSize(total)
	pageCount := p.PageCount(total)
	page := p.Clamp(pageCount).Index

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return View{
		Items:       slices.Clip(sorted[start:end]),
		Total:       total,
		PageCount:   pageCount,
		Page:        page,
		PageSize:    size,
		DatasetSize: datasetSize,
		HasPrev:     page > 1,
		HasNext:     page < pageCount,
	}
}
