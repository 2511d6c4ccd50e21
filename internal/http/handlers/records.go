package handlers

import (
	"net/http"

	"listing/internal/domain"
	"listing/internal/domain/models"
	"listing/internal/query"
	"listing/internal/services"

	"github.com/gin-gonic/gin"
)

// RecordItem is a record as shown in the listing table.
type RecordItem struct {
	models.Record
	ProfileURL string `json:"profile_url,omitempty"`
}

// ListResponse is the payload of GET /api/records and POST /api/records/query.
type ListResponse struct {
	Items      []RecordItem      `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
	Sort       domain.Sort       `json:"sort"`
	Summary    string            `json:"summary"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func (h *Handler) listResponse(svc services.ListingService, res services.ListingResult) ListResponse {
	items := make([]RecordItem, 0, len(res.View.Items))
	for _, r := range res.View.Items {
		items = append(items, RecordItem{Record: r, ProfileURL: svc.ProfileLink(r)})
	}
	sort := domain.Sort{Direction: string(res.State.Sort.Direction)}
	if res.State.Sort.Field.Valid() {
		sort.Field = res.State.Sort.Field.String()
	}
	return ListResponse{
		Items: items,
		Pagination: domain.Pagination{
			Page:        res.View.Page,
			PageSize:    res.View.PageSize,
			Total:       res.View.Total,
			TotalPages:  res.View.PageCount,
			DatasetSize: res.View.DatasetSize,
			HasPrev:     res.View.HasPrev,
			HasNext:     res.View.HasNext,
		},
		Sort:     sort,
		Summary:  res.Summary(),
		Warnings: res.WarningMessages(),
	}
}

// GET /api/records
func (h *Handler) ListRecords(c *gin.Context) {
	svc := h.listing(c)
	res, err := svc.QueryValues(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.listResponse(svc, res))
}

// POST /api/records/query
func (h *Handler) QueryRecords(c *gin.Context) {
	var req query.Request
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.listing(c)
	res, err := svc.Query(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.listResponse(svc, res))
}

// GET /api/records/:id
func (h *Handler) GetRecord(c *gin.Context) {
	svc := h.listing(c)
	r, err := svc.Record(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecordItem{Record: r, ProfileURL: svc.ProfileLink(r)})
}

// GET /api/records/export.pdf
func (h *Handler) ExportRecords(c *gin.Context) {
	svc := h.listing(c)
	res, err := svc.QueryValues(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	exp := services.ExportService{Title: h.ExportTitle, FontPath: h.FontPath, RequestID: svc.RequestID}
	pdf, filename, err := exp.RenderPDF(res.View)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to render pdf", Err: err})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
