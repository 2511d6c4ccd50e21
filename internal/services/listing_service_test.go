package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing/internal/domain"
	"listing/internal/domain/models"
	"listing/internal/facet"
	"listing/internal/query"
	"listing/internal/store"
)

func testStore() *store.Store {
	return store.New([]models.Record{
		{ID: models.NumericID(1), Name: "Hana", SalonName: "Salon A", Reviews: 5, Age: 24},
		{ID: models.NumericID(2), Name: "Mio", SalonName: "Salon B", Reviews: 10, Age: 29},
		{ID: models.NumericID(3), Name: "Aki", SalonName: "Salon A", Reviews: 10, Age: 31},
		{ID: models.TextID("x-4"), Name: "Rin", SalonName: "Salon C", Reviews: 40, Age: 22},
	})
}

func testService() ListingService {
	return ListingService{
		Store:      testStore(),
		Limits:     query.Limits{DefaultPageSize: 2, MaxPageSize: 3},
		ProfileURL: "https://example.com/p?id=%s",
	}
}

func TestListingService_Query(t *testing.T) {
	svc := testService()

	res, err := svc.Query(query.Request{
		In:   []string{"salon_name=Salon A", "salon_name=Salon B"},
		Cmp:  []string{"reviews>=10"},
		Sort: "-age",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.View.Total)
	require.Len(t, res.View.Items, 2)
	assert.Equal(t, "Aki", res.View.Items[0].Name)
	assert.Equal(t, "Mio", res.View.Items[1].Name)
	assert.Equal(t, "2 of 2 shown", res.Summary())
}

func TestListingService_QueryDefaultsAndWarnings(t *testing.T) {
	svc := testService()

	res, err := svc.Query(query.Request{Cmp: []string{"name>3"}, Sort: "bogus", PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 2)
	assert.Len(t, res.WarningMessages(), 2)
	assert.Equal(t, 4, res.View.Total)
	assert.Equal(t, 3, res.View.PageSize, "page size capped at the limit")
	assert.Equal(t, "3 of 4 shown", res.Summary())
}

func TestListingService_QueryValues(t *testing.T) {
	svc := testService()

	res, err := svc.QueryValues(url.Values{"q": {"salon a"}, "page": {"x"}, "page_size": {"1"}})
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.View.Total)
	assert.Equal(t, 2, res.View.PageCount)
	assert.Nil(t, ListingResult{}.WarningMessages())
}

func TestListingService_Record(t *testing.T) {
	svc := testService()

	r, err := svc.Record("x-4")
	require.NoError(t, err)
	assert.Equal(t, "Rin", r.Name)
	assert.Equal(t, "https://example.com/p?id=x-4", svc.ProfileLink(r))

	_, err = svc.Record("99")
	assert.True(t, domain.IsNotFound(err))
}

func TestListingService_Facets(t *testing.T) {
	svc := testService()

	values, err := svc.Facet("salon_name")
	require.NoError(t, err)
	assert.Equal(t, []facet.ValueCount{
		{Value: "Salon A", Count: 2},
		{Value: "Salon B", Count: 1},
		{Value: "Salon C", Count: 1},
	}, values)

	_, err = svc.Facet("price")
	assert.True(t, domain.IsValidation(err))

	all, err := svc.Facets()
	require.NoError(t, err)
	assert.Len(t, all, len(models.Fields()))
	assert.Equal(t, values, all["salon_name"])
}

func TestListingService_NoStore(t *testing.T) {
	var svc ListingService

	_, err := svc.Query(query.Request{})
	assert.True(t, domain.IsInternal(err))
	_, err = svc.Facets()
	assert.True(t, domain.IsInternal(err))
	assert.Equal(t, "", svc.ProfileLink(models.Record{ID: models.NumericID(1)}))
}

func TestListingService_FacetsIgnoreActiveFilters(t *testing.T) {
	svc := testService()
	before, err := svc.Facet("salon_name")
	require.NoError(t, err)

	res, err := svc.Query(query.Request{In: []string{"salon_name=Salon C"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.View.Total)

	after, err := svc.Facet("salon_name")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, after, 3)
}

func TestListingService_ProfileLinkKeepsOtherPercentSigns(t *testing.T) {
	svc := ListingService{ProfileURL: "https://example.com/a%20b/p?id=%s&ref=x%2Fy"}

	got := svc.ProfileLink(models.Record{ID: models.NumericID(7)})
	assert.Equal(t, "https://example.com/a%20b/p?id=7&ref=x%2Fy", got)

	svc.ProfileURL = "https://example.com/p/"
	assert.Equal(t, "https://example.com/p/7", svc.ProfileLink(models.Record{ID: models.NumericID(7)}))
}
