package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	"github.com/Dee1911/Aspire.can/internal/http/response"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// GET /api/catalog/scholarships
func (h *CatalogHandler) Scholarships(c *gin.Context) {
	response.RespondOK(c, gin.H{"scholarships": h.catalog.Scholarships()})
}

// GET /api/catalog/programs?q=&province=&faculty=
func (h *CatalogHandler) Programs(c *gin.Context) {
	programs := h.catalog.Programs(catalog.ProgramFilter{
		Query:    c.Query("q"),
		Province: c.Query("province"),
		Faculty:  c.Query("faculty"),
	})
	response.RespondOK(c, gin.H{
		"programs":  programs,
		"provinces": h.catalog.Provinces(),
		"faculties": h.catalog.Faculties(),
	})
}

// GET /api/catalog/activities?q=&province=&category=
func (h *CatalogHandler) Activities(c *gin.Context) {
	activities := h.catalog.Activities(catalog.ActivityFilter{
		Query:    c.Query("q"),
		Province: c.Query("province"),
		Category: c.Query("category"),
	})
	response.RespondOK(c, gin.H{
		"activities": activities,
		"categories": h.catalog.Categories(),
	})
}
