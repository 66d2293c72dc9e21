package web

import (
	"net/http"

	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/dashboard"
	"go.uber.org/zap"
)

// StrategyData holds data for the strategy template. Page is nil until the
// record set has loaded, which leaves the page in its placeholder state.
type StrategyData struct {
	Title    string
	Category string
	HomePath string
	Page     *dashboard.Page
}

// Strategy renders the cards of the category named by the "type" query
// parameter. Without one the visitor is sent home before any data is read.
// A failed load is logged and answered with the unrendered page.
func (h *Handler) Strategy(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	if category == "" {
		h.recordPage("strategy", "redirect")
		http.Redirect(w, r, h.homePath, http.StatusFound)
		return
	}

	data := StrategyData{
		Title:    "Strategy",
		Category: category,
		HomePath: h.homePath,
	}

	records, err := h.loader.Load(r.Context())
	if err != nil {
		h.logger.Error("error loading data",
			zap.String("category", category),
			zap.Error(err),
		)
		h.recordPage("strategy", "pending")
		h.render(w, "strategy.html", data)
		return
	}

	page := h.builder.Build(category, catalog.Filter(records, category))
	data.Title = category
	data.Page = &page

	if page.Empty {
		h.recordPage("strategy", "empty")
	} else {
		h.recordPage("strategy", "rendered")
	}
	h.render(w, "strategy.html", data)
}
