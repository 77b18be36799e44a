package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/remote"
	"github.com/baharkarakas/ypa-web/internal/services"
)

// writeRemoteError translates a backend failure for the caller.
func writeRemoteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownCollection):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "unknown collection", nil)
		return
	case errors.Is(err, services.ErrInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_status", "status must be pending, confirmed or cancelled", nil)
		return
	}

	switch status := remote.StatusOf(err); {
	case status == http.StatusNotFound:
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "backend refused the session", nil)
	case status >= 400 && status < 500:
		httpx.WriteError(w, http.StatusBadRequest, "rejected", remote.DetailOf(err), nil)
	default:
		slog.Error("backend call failed", "path", r.URL.Path, "err", err)
		httpx.WriteError(w, http.StatusBadGateway, "remote_unavailable", "backend unavailable", nil)
	}
}
