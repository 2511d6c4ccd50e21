package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing/internal/domain"
	"listing/internal/domain/models"
	"listing/internal/query"
)

type staticSource struct {
	records []models.Record
	err     error
}

func (s staticSource) String() string { return "static" }

func (s staticSource) Records(context.Context) ([]models.Record, error) {
	return s.records, s.err
}

func TestOpen(t *testing.T) {
	records, err := Load([]byte(samplePayload))
	require.NoError(t, err)

	st, err := Open(context.Background(), staticSource{records: records})
	require.NoError(t, err)
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, "static", st.Source())
	assert.False(t, st.LoadedAt().IsZero())

	_, err = Open(context.Background(), staticSource{err: errors.New("unreachable")})
	assert.True(t, domain.IsLoad(err))
}

func TestStore_ByIDFirstOccurrenceWins(t *testing.T) {
	st := New([]models.Record{
		{ID: models.NumericID(1), Name: "first"},
		{ID: models.NumericID(1), Name: "second"},
		{ID: models.TextID("x-2"), Name: "text id"},
	})

	r, ok := st.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "first", r.Name)

	r, ok = st.ByID("x-2")
	require.True(t, ok)
	assert.Equal(t, "text id", r.Name)

	_, ok = st.ByID("404")
	assert.False(t, ok)
	assert.Equal(t, 3, st.Len(), "duplicates stay in the dataset")
}

func TestStore_RecordsIsACopy(t *testing.T) {
	st := New([]models.Record{{ID: models.NumericID(1), Name: "a"}})

	out := st.Records()
	out[0].Name = "changed"
	assert.Equal(t, "a", st.Records()[0].Name)
}

func TestStore_DeriveMatchesPipeline(t *testing.T) {
	records, err := Load([]byte(samplePayload))
	require.NoError(t, err)
	st := New(records)

	state := query.State{
		Criteria: query.Criteria{
			Sets:        []query.SetCriterion{{Field: models.FieldSalonName, Values: []string{"Salon A"}}},
			Comparisons: []query.ComparisonCriterion{{Field: models.FieldReviews, Op: query.OpGreaterEqual, Threshold: query.Float(5)}},
		},
		Sort: query.SortSpec{Field: models.FieldReviews, Direction: query.Desc},
		Page: query.PageSpec{Size: 10, Index: 1},
	}
	want := query.DeriveView(records, state)
	if diff := cmp.Diff(want, st.Derive(state)); diff != "" {
		t.Fatalf("derive mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, want.Total)
}

func TestStore_NilRecords(t *testing.T) {
	st := New(nil)
	assert.Equal(t, 0, st.Len())
	v := st.Derive(query.State{Sort: query.DefaultSort(), Page: query.PageSpec{Size: 5, Index: 1}})
	assert.Equal(t, 1, v.PageCount)
	assert.Empty(t, v.Items)
}
