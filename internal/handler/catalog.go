package handler

import (
	"log/slog"
	"net/http"

	"smartlearn/internal/catalog"
	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/httputil"
)

// CatalogHandler serves the options the lesson form offers
type CatalogHandler struct {
	registry *catalog.Registry
	resolver learningSvc.PromptResolver
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *catalog.Registry, resolver learningSvc.PromptResolver, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		resolver: resolver,
		logger:   logger,
	}
}

// CatalogResponse is the catalog plus the activities and the fields each one needs
type CatalogResponse struct {
	*catalog.Catalog
	Activities []ActivityInfo `json:"activities"`
}

// ActivityInfo describes one activity kind
type ActivityInfo struct {
	Name          string        `json:"name"`
	RequiredSlots []models.Slot `json:"required_slots"`
}

// GetCatalog returns the form catalog
// GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	kinds := models.Activities()
	activities := make([]ActivityInfo, 0, len(kinds))

	for _, kind := range kinds {
		slots, err := h.resolver.RequiredSlots(kind)
		if err != nil {
			handleError(w, r, h.logger, err)
			return
		}
		activities = append(activities, ActivityInfo{Name: kind.String(), RequiredSlots: slots})
	}

	httputil.RespondJSON(w, http.StatusOK, CatalogResponse{
		Catalog:    h.registry.Catalog(),
		Activities: activities,
	})
}

// Health reports liveness
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
