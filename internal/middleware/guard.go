package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/metrics"
)

type Decision int

const (
	Admitted Decision = iota
	Redirected
)

func (d Decision) String() string {
	if d == Admitted {
		return "admitted"
	}
	return "redirected"
}

// SessionVerifier is what the guard needs from the authenticator.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) *auth.Identity
	Logout(w http.ResponseWriter)
}

// Decide admits the login page unconditionally and everything else only
// for a remotely verified admin. The login path must match exactly; dot
// segments are not resolved. The identity is nil unless verified.
func Decide(ctx context.Context, sv SessionVerifier, reqPath, loginPath, token string) (Decision, *auth.Identity) {
	if reqPath == loginPath {
		return Admitted, nil
	}
	id := sv.Verify(ctx, token)
	if !id.IsAdminRole() {
		return Redirected, nil
	}
	return Admitted, id
}

// Guard is the authoritative gate for the admin area. Every request is
// verified against the backend; nothing is cached between requests.
func Guard(sv SessionVerifier, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFrom(r)
			d, id := Decide(r.Context(), sv, r.URL.Path, loginPath, token)
			metrics.GuardDecisions.WithLabelValues(d.String()).Inc()

			if d == Redirected {
				if token != "" {
					// stale or non-admin session
					sv.Logout(w)
				}
				slog.Debug("guard redirect", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if id != nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
