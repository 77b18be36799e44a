package backend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/middleware"
	"github.com/baharkarakas/ypa-web/internal/models"
	repo "github.com/baharkarakas/ypa-web/internal/repository"
)

// Stores groups the repositories the API serves from.
type Stores struct {
	Bookings repo.Bookings
	Contact  repo.ContactMessages
	Reviews  repo.Reviews
	Content  repo.Content
}

type Handler struct {
	users  *UserService
	stores Stores
}

func NewHandler(u *UserService, s Stores) *Handler {
	return &Handler{users: u, stores: s}
}

// writeDetail answers with the {"detail": "..."} error body clients expect.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, map[string]string{"detail": msg})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}
	slog.Error("devapi", "err", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

type userOut struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"is_admin"`
}

func toUserOut(u models.User) userOut {
	return userOut{
		ID: u.ID, Username: u.Username, Email: u.Email,
		FirstName: u.FirstName, LastName: u.LastName,
		Name: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Role: u.Role, IsAdmin: u.IsAdmin,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	tok, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": tok,
		"token_type":   "bearer",
		"user":         toUserOut(u),
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Verify(r.Context(), middleware.BearerToken(r))
	if errors.Is(err, ErrInvalidToken) {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	out := toUserOut(u)
	out.Name = "" // verify answers with first/last name only
	httpx.WriteJSON(w, http.StatusOK, out)
}

// decodeBody reads JSON or answers 422 itself.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

// ---------- bookings ----------

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var nb models.NewBooking
	if !decodeBody(w, r, &nb) {
		return
	}
	if nb.PartySize < 1 || nb.PartySize > 12 || nb.CustomerName == "" || nb.BookingDate == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid booking")
		return
	}
	b, err := h.stores.Bookings.Create(r.Context(), nb)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status := models.BookingStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}
	out, err := h.stores.Bookings.List(r.Context(), status)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}
	b, err := h.stores.Bookings.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// ---------- contact ----------

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var m models.NewContactMessage
	if !decodeBody(w, r, &m) {
		return
	}
	if m.Email == "" || m.Message == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid message")
		return
	}
	out, err := h.stores.Contact.Create(r.Context(), m)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) ListContact(w http.ResponseWriter, r *http.Request) {
	out, err := h.stores.Contact.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsRead bool `json:"is_read"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.stores.Contact.SetRead(r.Context(), chi.URLParam(r, "id"), req.IsRead)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

// ---------- reviews ----------

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var nr models.NewReview
	if !decodeBody(w, r, &nr) {
		return
	}
	if nr.Rating < 1 || nr.Rating > 5 || nr.CustomerName == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid review")
		return
	}
	rv, err := h.stores.Reviews.Create(r.Context(), nr)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rv)
}

// ListReviews shows pending reviews only to admins.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	approvedOnly := true
	if tok := middleware.BearerToken(r); tok != "" {
		if c, err := h.users.tm.Parse(tok); err == nil && c.Role == auth.RoleAdmin {
			approvedOnly = false
		}
	}
	out, err := h.stores.Reviews.List(r.Context(), approvedOnly)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsApproved bool `json:"is_approved"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.stores.Reviews.SetApproved(r.Context(), chi.URLParam(r, "id"), req.IsApproved)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rv)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.stores.Reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- catalog ----------

func (h *Handler) ListContent(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.stores.Content.List(r.Context(), collection)
		if err != nil {
			h.fail(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, docs)
	}
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	doc, err := h.stores.Content.Get(r.Context(), models.CollectionMenu, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, json.RawMessage(doc))
}
