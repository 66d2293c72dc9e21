package web

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/newthinker/stratdeck/internal/storage/artifact"
	"go.uber.org/zap"
)

// Report serves one audit report file linked from a strategy card.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || h.reports == nil {
		http.NotFound(w, r)
		return
	}

	data, err := h.reports.Read(r.Context(), path.Join(h.reportsPrefix, name))
	if errors.Is(err, artifact.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("error reading report", zap.String("name", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ctype)
	w.Write(data)
}
