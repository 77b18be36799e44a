package handlers

import (
	"net/http"
	"net/url"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/api/validate"
	"github.com/baharkarakas/ypa-web/internal/services"
)

type SubmissionHandler struct {
	svc *services.SubmissionService
}

func NewSubmissionHandler(s *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: s}
}

// decode fills a form from a JSON body or from url-encoded fields.
func decode[F any](w http.ResponseWriter, r *http.Request, fromValues func(url.Values) F) (F, bool) {
	var f F
	if httpx.IsJSON(r) {
		if err := httpx.DecodeJSON(w, r, &f); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
			return f, false
		}
		return f, true
	}
	if err := httpx.ParseForm(w, r); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid form body", nil)
		return f, false
	}
	return fromValues(r.PostForm), true
}

// writeResult maps the envelope to 201, 422 or 502.
func writeResult(w http.ResponseWriter, res validate.Result) {
	status := http.StatusCreated
	switch {
	case res.Success:
	case len(res.Errors) > 0:
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
	}
	httpx.WriteJSON(w, status, res)
}

func (h *SubmissionHandler) Booking(w http.ResponseWriter, r *http.Request) {
	f, ok := decode(w, r, validate.BookingFormFrom)
	if !ok {
		return
	}
	writeResult(w, h.svc.SubmitBooking(r.Context(), f))
}

func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	f, ok := decode(w, r, validate.ContactFormFrom)
	if !ok {
		return
	}
	writeResult(w, h.svc.SubmitContact(r.Context(), f))
}

func (h *SubmissionHandler) Review(w http.ResponseWriter, r *http.Request) {
	f, ok := decode(w, r, validate.ReviewFormFrom)
	if !ok {
		return
	}
	writeResult(w, h.svc.SubmitReview(r.Context(), f))
}
