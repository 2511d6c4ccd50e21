package query

import (
	"github.com/RoaringBitmap/roaring/v2"

	"listing/internal/domain/models"
	"listing/internal/facet"
)

// Engine derives views over one immutable dataset, using the facet index
// postings to skip records that cannot pass the set criteria. Its results
// are identical to DeriveView over the same records.
type Engine struct {
	records []models.Record
	index   *facet.Index
}

// NewEngine binds records to an index built from exactly those records.
// A nil or mismatched index falls back to a full scan.
func NewEngine(records []models.Record, index *facet.Index) *Engine {
	if index != nil && index.Len() != len(records) {
		index = nil
	}
	return &Engine{records: records, index: index}
}

// Len is the dataset size.
func (e *Engine) Len() int {
	return len(e.records)
}

// Derive computes the view for st. Safe for concurrent use.
func (e *Engine) Derive(st State) View {
	candidates := e.candidates(st.Criteria)
	if candidates == nil {
		return DeriveView(e.records, st)
	}

	m := newMatcher(st.Search, st.Criteria)
	filtered := make([]models.Record, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		r := e.records[it.Next()]
		if m.match(r) {
			filtered = append(filtered, r)
		}
	}
	sortInPlace(filtered, st.Sort)
	return paginate(filtered, len(e.records), st.Page)
}

// candidates intersects the postings of every active set criterion. Bitmap
// iteration is ascending, so candidate order equals dataset order.
func (e *Engine) candidates(c Criteria) *roaring.Bitmap {
	if e.index == nil {
		return nil
	}
	var acc *roaring.Bitmap
	for _, s := range c.Sets {
		if !s.active() {
			continue
		}
		bm := e.index.Postings(s.Field, s.Values)
		if acc == nil {
			acc = bm
			continue
		}
		acc.And(bm)
	}
	return acc
}
