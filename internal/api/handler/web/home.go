package web

import (
	"net/http"

	"github.com/newthinker/stratdeck/internal/dashboard"
	"go.uber.org/zap"
)

// HomeData holds data for the home template
type HomeData struct {
	Title      string
	Categories []dashboard.CategorySummary
}

// Home renders the category index. When data.json cannot be read the
// described categories are still listed, without counts.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	records, err := h.loader.Load(r.Context())
	if err != nil {
		h.logger.Error("error loading data", zap.Error(err))
		records = nil
	}

	h.recordPage("home", "rendered")
	h.render(w, "home.html", HomeData{
		Title:      "Strategies",
		Categories: h.builder.Index(records),
	})
}
