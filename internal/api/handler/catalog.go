package handler

import (
	"net/http"

	"github.com/hmori/dopabalance/internal/api/response"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/entry"
)

// CatalogHandler serves the static habit and team catalog
type CatalogHandler struct {
	catalog *model.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *model.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Get handles GET /api/v1/catalog
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CatalogResponseFromModel(h.catalog, entry.BackfillDays))
}
