package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/remote"
)

// AuthError is a login failure the user can act on.
type AuthError struct {
	Code   string
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return "auth: " + e.Code + ": " + e.Detail
	}
	return "auth: " + e.Code
}

// Is matches on Code so callers can use errors.Is(err, ErrInvalidCredentials).
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidCredentials = &AuthError{Code: "invalid_credentials"}
	ErrLocked             = &AuthError{Code: "too_many_attempts"}
	ErrMalformedResponse  = errors.New("auth: malformed identity response")
)

// Backend is the slice of the REST client the authenticator needs.
type Backend interface {
	Get(ctx context.Context, path, token string, out any) error
	Post(ctx context.Context, path, token string, in, out any) error
}

type Authenticator struct {
	backend  Backend
	throttle Throttle
}

func NewAuthenticator(b Backend, t Throttle) *Authenticator {
	if t == nil {
		t = nopThrottle{}
	}
	return &Authenticator{backend: b, throttle: t}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and writes the session cookies.
// A non-2xx answer from the backend is ErrInvalidCredentials; transport
// failures are returned wrapped and leave the throttle untouched.
func (a *Authenticator) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*Session, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	locked, err := a.throttle.Locked(ctx, key)
	if err != nil {
		slog.Error("login throttle", "err", err)
	}
	if locked {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		slog.Warn("login refused, account locked", "email", key)
		return nil, ErrLocked
	}

	var resp loginResponse
	err = a.backend.Post(ctx, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if remote.StatusOf(err) == 0 {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("auth: login: %w", err)
		}
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		slog.Warn("login rejected", "email", key, "status", remote.StatusOf(err))
		if ferr := a.throttle.Fail(ctx, key); ferr != nil {
			slog.Error("login throttle", "err", ferr)
		}
		return nil, &AuthError{Code: ErrInvalidCredentials.Code, Detail: remote.DetailOf(err)}
	}

	sess, err := sessionFromLogin(resp)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if err := a.throttle.Reset(ctx, key); err != nil {
		slog.Error("login throttle", "err", err)
	}
	if err := writeSession(w, *sess); err != nil {
		return nil, fmt.Errorf("auth: write session: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	slog.Info("admin login", "user_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

func sessionFromLogin(resp loginResponse) (*Session, error) {
	token := firstNonEmpty(resp.AccessToken, resp.Token)
	if token == "" || len(resp.User) == 0 {
		return nil, ErrMalformedResponse
	}
	var u remoteUser
	if err := json.Unmarshal(resp.User, &u); err != nil || !u.wellFormed() {
		return nil, ErrMalformedResponse
	}
	return &Session{Token: token, User: NormalizeLogin(u)}, nil
}

// Verify resolves a bearer token to an identity. It never fails loudly:
// no token, a rejected token, a transport error or a malformed payload all
// yield nil. Only the last three are logged.
func (a *Authenticator) Verify(ctx context.Context, token string) *Identity {
	if token == "" {
		return nil
	}
	var u remoteUser
	if err := a.backend.Get(ctx, "/auth/verify", token, &u); err != nil {
		if status := remote.StatusOf(err); status != 0 {
			slog.Warn("session rejected by backend", "status", status)
		} else {
			slog.Error("session verify", "err", err)
		}
		return nil
	}
	if !u.wellFormed() {
		slog.Warn("session verify: malformed identity payload")
		return nil
	}
	id := NormalizeVerify(u)
	return &id
}

// Logout expires both session cookies.
func (a *Authenticator) Logout(w http.ResponseWriter) {
	clearSession(w)
}

// ReadSession returns what the cookies claim without asking the backend.
// It must not be used for admission.
func (a *Authenticator) ReadSession(r *http.Request) (string, *Identity) {
	return TokenFrom(r), userFrom(r)
}
