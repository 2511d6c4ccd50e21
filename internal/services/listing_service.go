package services

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"listing/internal/domain"
	"listing/internal/domain/models"
	"listing/internal/facet"
	"listing/internal/query"
	"listing/internal/store"
	"listing/internal/utils"
)

// ListingService answers listing queries over the loaded store.
type ListingService struct {
	Store      *store.Store
	Limits     query.Limits
	ProfileURL string // fmt template with one %s for the record id
	RequestID  string
}

// ListingResult is a derived view plus the criteria that were dropped.
type ListingResult struct {
	State    query.State
	View     query.View
	Warnings []error
}

// Summary renders the "N of M shown" footer line.
func (r ListingResult) Summary() string {
	return fmt.Sprintf("%d of %d shown", len(r.View.Items), r.View.Total)
}

// WarningMessages flattens Warnings for responses.
func (r ListingResult) WarningMessages() []string {
	if len(r.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.Error())
	}
	return out
}

// Query derives the view for req. Malformed criteria never fail the query;
// they are dropped and returned as warnings.
func (s ListingService) Query(req query.Request) (ListingResult, error) {
	if s.Store == nil {
		return ListingResult{}, domain.InternalError{Msg: "dataset not loaded"}
	}
	st, warns := req.State(s.Limits)
	view := s.Store.Derive(st)

	utils.LogEvent(s.RequestID, "listing", "query", "view derived",
		zap.Int("total", view.Total),
		zap.Int("page", view.Page),
		zap.Int("page_count", view.PageCount),
		zap.Int("active_criteria", st.Criteria.ActiveCount()),
		zap.Int("warnings", len(warns)),
	)
	return ListingResult{State: st, View: view, Warnings: warns}, nil
}

// QueryValues is Query for URL query values.
func (s ListingService) QueryValues(v url.Values) (ListingResult, error) {
	req, warns := query.RequestFromValues(v)
	res, err := s.Query(req)
	if err != nil {
		return res, err
	}
	res.Warnings = append(warns, res.Warnings...)
	return res, nil
}

// Record returns one record by id.
func (s ListingService) Record(id string) (models.Record, error) {
	if s.Store == nil {
		return models.Record{}, domain.InternalError{Msg: "dataset not loaded"}
	}
	r, ok := s.Store.ByID(strings.TrimSpace(id))
	if !ok {
		return models.Record{}, domain.NotFoundError{Resource: "record " + id}
	}
	return r, nil
}

// Facet returns the distinct values of one field with counts, computed over
// the full dataset.
func (s ListingService) Facet(field string) ([]facet.ValueCount, error) {
	if s.Store == nil {
		return nil, domain.InternalError{Msg: "dataset not loaded"}
	}
	f, ok := models.ParseField(field)
	if !ok {
		return nil, domain.ValidationError{Field: "field", Msg: fmt.Sprintf("unknown field %q", field)}
	}
	return s.Store.Index().Counts(f), nil
}

// Facets returns the distinct values of every field.
func (s ListingService) Facets() (map[string][]facet.ValueCount, error) {
	if s.Store == nil {
		return nil, domain.InternalError{Msg: "dataset not loaded"}
	}
	out := make(map[string][]facet.ValueCount, len(models.Fields()))
	for _, f := range models.Fields() {
		out[f.String()] = s.Store.Index().Counts(f)
	}
	return out, nil
}

// ProfileLink renders the public profile URL of r, or "" when disabled.
func (s ListingService) ProfileLink(r models.Record) string {
	if s.ProfileURL == "" || r.ID.Raw == "" {
		return ""
	}
	id := url.QueryEscape(r.ID.Raw)
	if !strings.Contains(s.ProfileURL, "%s") {
		return s.ProfileURL + id
	}
	return strings.Replace(s.ProfileURL, "%s", id, 1)
}
