package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/baharkarakas/ypa-web/internal/api/httpx"
	"github.com/baharkarakas/ypa-web/internal/auth"
)

//go:embed templates/login.html
var templatesFS embed.FS

var loginTmpl = template.Must(template.ParseFS(templatesFS, "templates/login.html"))

// login page error codes, carried in ?error=
var loginErrors = map[string]string{
	"invalid":     "Invalid credentials. Please try again.",
	"locked":      "Too many failed attempts. Please try again later.",
	"unavailable": "Login is temporarily unavailable. Please try again.",
	"bad_request": "The login form could not be read. Please try again.",
}

// Authenticator is the session API the auth handlers drive.
type Authenticator interface {
	Login(ctx context.Context, w http.ResponseWriter, email, password string) (*auth.Session, error)
	Logout(w http.ResponseWriter)
	ReadSession(r *http.Request) (string, *auth.Identity)
}

type AuthHandler struct {
	authn     Authenticator
	loginPath string
	homePath  string
}

func NewAuthHandler(a Authenticator, loginPath, homePath string) *AuthHandler {
	return &AuthHandler{authn: a, loginPath: loginPath, homePath: homePath}
}

type loginPage struct {
	Action     string
	Home       string
	Email      string
	Error      string
	SignedInAs string
}

// LoginPage renders the sign-in form. The user-data cookie is only used
// to greet a returning admin; admission is still decided by the guard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := loginPage{
		Action: h.loginPath,
		Home:   h.homePath,
		Email:  r.URL.Query().Get("email"),
		Error:  loginErrors[r.URL.Query().Get("error")],
	}
	if _, u := h.authn.ReadSession(r); u.IsAdminRole() {
		data.SignedInAs = u.Name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := loginTmpl.Execute(w, data); err != nil {
		slog.Error("render login page", "err", err)
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts a form post (redirects) or a JSON body (JSON answer).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	asJSON := httpx.WantsJSON(r)

	var req loginReq
	if httpx.IsJSON(r) {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			h.loginFailed(w, r, true, "", "bad_request", http.StatusBadRequest)
			return
		}
	} else {
		if err := httpx.ParseForm(w, r); err != nil {
			h.loginFailed(w, r, asJSON, "", "bad_request", http.StatusBadRequest)
			return
		}
		req.Email, req.Password = r.PostForm.Get("email"), r.PostForm.Get("password")
	}

	if req.Email == "" || req.Password == "" {
		h.loginFailed(w, r, asJSON, req.Email, "invalid", http.StatusUnauthorized)
		return
	}

	sess, err := h.authn.Login(r.Context(), w, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrLocked):
		h.loginFailed(w, r, asJSON, req.Email, "locked", http.StatusTooManyRequests)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.loginFailed(w, r, asJSON, req.Email, "invalid", http.StatusUnauthorized)
		return
	default:
		slog.Error("admin login", "err", err)
		h.loginFailed(w, r, asJSON, req.Email, "unavailable", http.StatusBadGateway)
		return
	}

	if asJSON {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": sess.User, "redirect": h.homePath})
		return
	}
	http.Redirect(w, r, h.homePath, http.StatusSeeOther)
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, asJSON bool, email, code string, status int) {
	if asJSON {
		httpx.WriteError(w, status, code, loginErrors[code], nil)
		return
	}
	q := url.Values{"error": {code}}
	if email != "" {
		q.Set("email", email)
	}
	http.Redirect(w, r, h.loginPath+"?"+q.Encode(), http.StatusSeeOther)
}

// Logout always succeeds, with or without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authn.Logout(w)
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, h.loginPath, http.StatusSeeOther)
}
