package query

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing/internal/domain/models"
)

func dataset(n int) []models.Record {
	salons := []string{"Salon A", "Salon B", "Salon C"}
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{
			ID:        models.NumericID(float64(i + 1)),
			Name:      fmt.Sprintf("therapist-%02d", i+1),
			SalonName: salons[i%len(salons)],
			Reviews:   float64((i * 7) % 13),
			Age:       float64(20 + i%15),
			Score:     float64(i%5) + 0.5,
		}
	}
	return out
}

func TestDeriveView_ThresholdExample(t *testing.T) {
	records := []models.Record{rec(1, "a", "", 5, 0), rec(2, "b", "", 10, 0), rec(3, "c", "", 10, 0)}

	st := State{
		Criteria: Criteria{Comparisons: []ComparisonCriterion{{Field: models.FieldReviews, Op: OpGreaterEqual, Threshold: Float(10)}}},
		Sort:     DefaultSort(),
		Page:     PageSpec{Size: 10, Index: 1},
	}
	v := DeriveView(records, st)
	assert.Equal(t, 2, v.Total)
	assert.Equal(t, []string{"2", "3"}, ids(v.Items))
	assert.Equal(t, 3, v.DatasetSize)

	st.Criteria.Comparisons[0].Threshold = nil
	assert.Equal(t, 3, DeriveView(records, st).Total)
}

func TestDeriveView_SecondPageOfSizeOne(t *testing.T) {
	records := []models.Record{rec(1, "a", "", 0, 0), rec(2, "b", "", 0, 0), rec(3, "c", "", 0, 0)}

	v := DeriveView(records, State{Sort: DefaultSort(), Page: PageSpec{Size: 1, Index: 2}})
	assert.Equal(t, []string{"2"}, ids(v.Items))
	assert.Equal(t, 3, v.PageCount)
	assert.True(t, v.HasPrev)
	assert.True(t, v.HasNext)
}

func TestDeriveView_EmptyResult(t *testing.T) {
	v := DeriveView(dataset(5), State{Search: "nobody", Sort: DefaultSort(), Page: PageSpec{Size: 2, Index: 3}})

	assert.Empty(t, v.Items)
	assert.Equal(t, 0, v.Total)
	assert.Equal(t, 1, v.PageCount)
	assert.Equal(t, 1, v.Page)
	assert.False(t, v.HasPrev)
	assert.False(t, v.HasNext)
}

func TestDeriveView_PagesPartitionFilteredSet(t *testing.T) {
	records := dataset(47)
	st := State{
		Criteria: Criteria{Sets: []SetCriterion{{Field: models.FieldSalonName, Values: []string{"Salon A", "Salon C"}}}},
		Sort:     SortSpec{Field: models.FieldReviews, Direction: Desc},
	}
	all := DeriveView(records, st)
	require.Equal(t, 1, all.PageCount)

	for _, size := range []int{1, 4, 7, 31, 100} {
		st.Page = PageSpec{Size: size, Index: 1}
		first := DeriveView(records, st)
		wantPages := max(1, (first.Total+size-1)/size)
		assert.Equal(t, wantPages, first.PageCount, "size %d", size)

		var joined []models.Record
		for p := 1; p <= first.PageCount; p++ {
			st.Page.Index = p
			v := DeriveView(records, st)
			assert.LessOrEqual(t, len(v.Items), size)
			joined = append(joined, v.Items...)
		}
		if diff := cmp.Diff(all.Items, joined); diff != "" {
			t.Fatalf("size %d: pages do not concatenate to the full view (-want +got):\n%s", size, diff)
		}
	}
}

func TestDeriveView_PageIsClamped(t *testing.T) {
	records := dataset(10)

	v := DeriveView(records, State{Sort: DefaultSort(), Page: PageSpec{Size: 3, Index: 99}})
	assert.Equal(t, 4, v.Page)
	assert.Equal(t, []string{"10"}, ids(v.Items))

	v = DeriveView(records, State{Sort: DefaultSort(), Page: PageSpec{Size: 3, Index: -2}})
	assert.Equal(t, 1, v.Page)
}

func TestDeriveView_PureAndIdempotent(t *testing.T) {
	records := dataset(20)
	before := append([]models.Record(nil), records...)
	st := State{Search: "therapist-1", Sort: SortSpec{Field: models.FieldAge, Direction: Desc}, Page: PageSpec{Size: 4, Index: 1}}

	a := DeriveView(records, st)
	b := DeriveView(records, st)
	assert.Equal(t, a, b)
	assert.Equal(t, before, records)
}

func TestFilter_AddingCriterionNeverGrowsResult(t *testing.T) {
	records := dataset(60)
	base := Criteria{Sets: []SetCriterion{{Field: models.FieldSalonName, Values: []string{"Salon B"}}}}
	narrowed := base
	narrowed.Ranges = []RangeCriterion{{Field: models.FieldAge, Min: Float(22), Max: Float(28)}}

	wide := Filter(records, "", base)
	narrow := Filter(records, "", narrowed)
	assert.LessOrEqual(t, len(narrow), len(wide))
	for _, r := range narrow {
		assert.Contains(t, wide, r)
	}
}

func TestPageSpec_Navigation(t *testing.T) {
	p := PageSpec{Size: 10, Index: 1}
	assert.Equal(t, 3, p.PageCount(25))
	assert.Equal(t, 1, p.PageCount(0))
	assert.Equal(t, 1, PageSpec{}.PageCount(25), "non-positive size is a single page")

	p = p.Next(3).Next(3).Next(3)
	assert.Equal(t, 3, p.Index)
	p = p.Prev(3).Prev(3).Prev(3)
	assert.Equal(t, 1, p.Index)

	assert.Equal(t, 2, PageSpec{Size: 10, Index: 5}.Clamp(2).Index)
	assert.Equal(t, 1, PageSpec{Size: 10, Index: 5}.Clamp(0).Index)
}

func TestDeriveView_FilterSortPageTogether(t *testing.T) {
	records := []models.Record{rec(1, "a", "", 5, 0), rec(2, "b", "", 10, 0), rec(3, "c", "", 10, 0)}
	st := State{
		Criteria: Criteria{Comparisons: []ComparisonCriterion{{Field: models.FieldReviews, Op: OpGreaterEqual, Threshold: Float(10)}}},
		Sort:     SortSpec{Field: models.FieldReviews, Direction: Desc},
		Page:     PageSpec{Size: 1, Index: 2},
	}

	v := DeriveView(records, st)
	assert.Equal(t, []string{"3"}, ids(v.Items))
	assert.Equal(t, 2, v.Total)
	assert.Equal(t, 2, v.PageCount)
	assert.True(t, v.HasPrev)
	assert.False(t, v.HasNext)
}

func TestDeriveView_NonFiniteThresholdKeepsEverything(t *testing.T) {
	records := []models.Record{rec(1, "a", "", 5, 0), rec(2, "b", "", 10, 0)}
	st := State{
		Criteria: Criteria{Comparisons: []ComparisonCriterion{{Field: models.FieldReviews, Op: OpGreaterEqual, Threshold: Float(math.NaN())}}},
		Sort:     DefaultSort(),
	}
	assert.Equal(t, 2, DeriveView(records, st).Total)

	req := Request{Cmp: []string{"reviews>=NaN"}}
	parsed, warns := req.State(Limits{DefaultPageSize: 10})
	assert.Len(t, warns, 1)
	assert.Equal(t, 2, DeriveView(records, parsed).Total)
}
