package facet

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"listing/internal/domain/models"
)

// ValueCount is one facet choice with the number of records carrying it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type fieldIndex struct {
	values   []string
	postings map[string]*roaring.Bitmap
}

// Index holds, per field, the sorted distinct values and a posting bitmap
// of record positions for every value. It is built once per dataset and is
// read-only afterwards.
type Index struct {
	size   int
	fields []fieldIndex
}

// Build indexes every field of records. Positions in the posting bitmaps
// are indices into records.
func Build(records []models.Record) *Index {
	fields := models.Fields()
	ix := &Index{
		size:   len(records),
		fields: make([]fieldIndex, len(fields)+1),
	}
	for _, f := range fields {
		fi := fieldIndex{postings: map[string]*roaring.Bitmap{}}
		for pos, r := range records {
			v := f.Text(r)
			bm, ok := fi.postings[v]
			if !ok {
				bm = roaring.New()
				fi.postings[v] = bm
				fi.values = append(fi.values, v)
			}
			bm.Add(uint32(pos))
		}
		for _, bm := range fi.postings {
			bm.RunOptimize()
		}
		slices.Sort(fi.values)
		ix.fields[f] = fi
	}
	return ix
}

// Len is the number of records the index was built from.
func (ix *Index) Len() int {
	return ix.size
}

func (ix *Index) field(f models.Field) (fieldIndex, bool) {
	if ix == nil || !f.Valid() || int(f) >= len(ix.fields) {
		return fieldIndex{}, false
	}
	return ix.fields[f], true
}

// Values returns the distinct values of f, equal to Distinct over the
// indexed records.
func (ix *Index) Values(f models.Field) []string {
	fi, ok := ix.field(f)
	if !ok {
		return []string{}
	}
	return append([]string{}, fi.values...)
}

// Counts returns the distinct values of f with their record counts.
func (ix *Index) Counts(f models.Field) []ValueCount {
	fi, ok := ix.field(f)
	if !ok {
		return []ValueCount{}
	}
	out := make([]ValueCount, 0, len(fi.values))
	for _, v := range fi.values {
		out = append(out, ValueCount{Value: v, Count: int(fi.postings[v].GetCardinality())})
	}
	return out
}

// Postings returns a new bitmap of the positions whose value of f is any of
// values. Unknown values contribute nothing.
func (ix *Index) Postings(f models.Field, values []string) *roaring.Bitmap {
	fi, ok := ix.field(f)
	if !ok {
		return roaring.New()
	}
	bms := make([]*roaring.Bitmap, 0, len(values))
	for _, v := range values {
		if bm, ok := fi.postings[v]; ok {
			bms = append(bms, bm)
		}
	}
	switch len(bms) {
	case 0:
		return roaring.New()
	case 1:
		return bms[0].Clone()
	default:
		return roaring.FastOr(bms...)
	}
}
