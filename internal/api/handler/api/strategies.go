// Package api holds the JSON handlers mounted under /api.
package api

import (
	"net/http"

	"github.com/newthinker/stratdeck/internal/api/response"
	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/core"
	"github.com/newthinker/stratdeck/internal/dashboard"
	"go.uber.org/zap"
)

// StrategiesHandler serves the strategy page view-model as JSON.
type StrategiesHandler struct {
	loader  catalog.Loader
	builder *dashboard.Builder
	logger  *zap.Logger
}

// NewStrategiesHandler creates a new strategies handler. builder should be
// configured without a chart drawer; SVG output is not part of the JSON.
func NewStrategiesHandler(loader catalog.Loader, builder *dashboard.Builder, logger *zap.Logger) *StrategiesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if builder == nil {
		builder = dashboard.NewBuilder(nil, nil, logger, nil)
	}
	return &StrategiesHandler{loader: loader, builder: builder, logger: logger}
}

// List returns the page for the category named by the "type" parameter.
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	if category == "" {
		response.Error(w, http.StatusBadRequest, core.ErrCategoryMissing)
		return
	}

	records, err := h.loader.Load(r.Context())
	if err != nil {
		h.logger.Error("error loading data", zap.String("category", category), zap.Error(err))
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, h.builder.Build(category, catalog.Filter(records, category)))
}

// Categories returns the category index. Unlike the home page it reports a
// failed load instead of falling back to the described categories.
func (h *StrategiesHandler) Categories(w http.ResponseWriter, r *http.Request) {
	records, err := h.loader.Load(r.Context())
	if err != nil {
		h.logger.Error("error loading data", zap.Error(err))
		response.Error(w, response.StatusFor(err), err)
		return
	}

	index := h.builder.Index(records)
	response.JSON(w, http.StatusOK, map[string]any{
		"categories": index,
		"count":      len(index),
	})
}
