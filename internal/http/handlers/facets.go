package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/facets
func (h *Handler) ListFacets(c *gin.Context) {
	facets, err := h.listing(c).Facets()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facets": facets})
}

// GET /api/facets/:field
func (h *Handler) GetFacet(c *gin.Context) {
	field := c.Param("field")
	values, err := h.listing(c).Facet(field)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "values": values})
}
