package handler

import (
	"context"
	"log/slog"
	"net/http"

	"nova/internal/httputil"
	"nova/internal/service/llm"
)

// ModelCatalog aggregates model listings across backends. Implemented by
// chat.Catalog.
type ModelCatalog interface {
	ListModels(ctx context.Context) []llm.ModelEntry
}

// ModelsHandler handles GET /models.
type ModelsHandler struct {
	catalog ModelCatalog
	logger  *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(catalog ModelCatalog, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListModels returns the merged model list. Always 200; both sources down
// yields an empty array, not an error.
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.catalog.ListModels(r.Context())
	if models == nil {
		models = []llm.ModelEntry{}
	}

	httputil.RespondJSON(w, http.StatusOK, models)
}
