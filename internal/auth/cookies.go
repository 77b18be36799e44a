package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	TokenCookie = "auth-token"
	UserCookie  = "user-data"

	// SessionMaxAge is seven days, in seconds.
	SessionMaxAge = 7 * 24 * 60 * 60
)

// writeSession sets both session cookies. user-data stays readable by page
// scripts; auth-token does not need to be.
func writeSession(w http.ResponseWriter, s Session) error {
	raw, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessionCookie(TokenCookie, s.Token, true))
	http.SetCookie(w, sessionCookie(UserCookie, url.PathEscape(string(raw)), false))
	return nil
}

func sessionCookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: httpOnly,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// clearSession expires both cookies. Safe to call when none are set.
func clearSession(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// TokenFrom returns the bearer token cookie, or "".
func TokenFrom(r *http.Request) string {
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// userFrom decodes the user-data cookie. A missing or corrupt cookie yields nil.
func userFrom(r *http.Request) *Identity {
	c, err := r.Cookie(UserCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := url.PathUnescape(c.Value)
	if err != nil {
		return nil
	}
	var u Identity
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}
