package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/services"
)

// CatalogHandler serves the public, read-only catalog.
type CatalogHandler struct {
	svc *services.CatalogService
}

func NewCatalogHandler(s *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: s}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.Collection(r.Context(), "", chi.URLParam(r, "collection"))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	httpx.WriteJSON(w, http.StatusOK, raw)
}

func (h *CatalogHandler) MenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.MenuItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
