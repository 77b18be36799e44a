package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/middleware"
	"github.com/baharkarakas/ypa-web/internal/models"
	"github.com/baharkarakas/ypa-web/internal/services"
)

// AdminHandler serves the back office. It runs behind the guard, so the
// identity on the context has already been verified.
type AdminHandler struct {
	svc *services.AdminService
}

func NewAdminHandler(s *services.AdminService) *AdminHandler {
	return &AdminHandler{svc: s}
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "no session", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	d, err := h.svc.Dashboard(r.Context(), auth.TokenFrom(r), id)
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListBookings(r.Context(), auth.TokenFrom(r), r.URL.Query().Get("status"))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListReviews(r.Context(), auth.TokenFrom(r))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Contact(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListContact(r.Context(), auth.TokenFrom(r))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Collection lists a catalog collection with the admin token (menu, events, ...).
func (h *AdminHandler) Collection(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := h.svc.Catalog().Collection(r.Context(), auth.TokenFrom(r), name)
		if err != nil {
			writeRemoteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, raw)
	}
}

func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Report(r.Context(), auth.TokenFrom(r))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rep)
}

func (h *AdminHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if httpx.IsJSON(r) {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
			return
		}
	} else if err := httpx.ParseForm(w, r); err == nil {
		req.Status = r.PostForm.Get("status")
	}
	b, err := h.svc.SetBookingStatus(r.Context(), auth.TokenFrom(r), chi.URLParam(r, "id"), models.BookingStatus(req.Status))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *AdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	rv, err := h.svc.ApproveReview(r.Context(), auth.TokenFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rv)
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReview(r.Context(), auth.TokenFrom(r), chi.URLParam(r, "id")); err != nil {
		writeRemoteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.MarkContactRead(r.Context(), auth.TokenFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeRemoteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}
