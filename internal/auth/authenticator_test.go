package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ypa-web/internal/remote"
)

// fakeBackend serves /auth/login and /auth/verify like the restaurant API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Email != "admin@ypambuzi.com" || in.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok123","user":{"id":1,"email":"admin@ypambuzi.com","role":"admin","is_admin":true}}`))
	})
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok123":
			_, _ = w.Write([]byte(`{"id":1,"email":"admin@ypambuzi.com","first_name":"Yaw","last_name":"Mensah","role":"admin","is_admin":true}`))
		case "Bearer staff":
			_, _ = w.Write([]byte(`{"id":2,"username":"kofi","email":"kofi@ypambuzi.com","role":"staff","is_admin":false}`))
		case "Bearer broken":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid token"}`))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthenticator(t *testing.T, th Throttle) *Authenticator {
	srv := fakeBackend(t)
	return NewAuthenticator(remote.New(srv.URL, time.Second), th)
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestLogin(t *testing.T) {
	a := newTestAuthenticator(t, nil)

	t.Run("valid credentials set both cookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sess, err := a.Login(context.Background(), rec, "admin@ypambuzi.com", "admin123")
		require.NoError(t, err)

		assert.Equal(t, "tok123", sess.Token)
		assert.Equal(t, Identity{
			ID: 1, Username: "admin@ypambuzi.com", Email: "admin@ypambuzi.com",
			Name: "admin@ypambuzi.com", Role: "admin", IsAdmin: true,
		}, sess.User)

		cs := cookiesByName(rec)
		require.Contains(t, cs, TokenCookie)
		require.Contains(t, cs, UserCookie)

		tok := cs[TokenCookie]
		assert.Equal(t, "tok123", tok.Value)
		assert.True(t, tok.HttpOnly)
		assert.True(t, tok.Secure)
		assert.Equal(t, http.SameSiteStrictMode, tok.SameSite)
		assert.Equal(t, "/", tok.Path)
		assert.Equal(t, SessionMaxAge, tok.MaxAge)

		usr := cs[UserCookie]
		assert.False(t, usr.HttpOnly)
		raw, err := url.PathUnescape(usr.Value)
		require.NoError(t, err)
		var got Identity
		require.NoError(t, json.Unmarshal([]byte(raw), &got))
		assert.Equal(t, sess.User, got)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sess, err := a.Login(context.Background(), rec, "admin@ypambuzi.com", "nope")
		assert.Nil(t, sess)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCredentials))

		var ae *AuthError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "Incorrect email or password", ae.Detail)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unreachable backend is not a credential rejection", func(t *testing.T) {
		down := NewAuthenticator(remote.New("http://127.0.0.1:1", 200*time.Millisecond), nil)
		rec := httptest.NewRecorder()
		_, err := down.Login(context.Background(), rec, "admin@ypambuzi.com", "admin123")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInvalidCredentials))
		assert.True(t, errors.Is(err, remote.ErrUnavailable))
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestLoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"t","user":{}}`))
	}))
	defer srv.Close()

	a := NewAuthenticator(remote.New(srv.URL, time.Second), nil)
	rec := httptest.NewRecorder()
	_, err := a.Login(context.Background(), rec, "a@b.c", "x")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginLockout(t *testing.T) {
	th := NewMemoryThrottle(ThrottlePolicy{MaxFailures: 2, Window: time.Minute, Lockout: time.Minute})
	a := newTestAuthenticator(t, th)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := a.Login(ctx, httptest.NewRecorder(), "admin@ypambuzi.com", "bad")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the right password is refused while locked
	_, err := a.Login(ctx, httptest.NewRecorder(), "Admin@YPAmbuzi.com ", "admin123")
	assert.ErrorIs(t, err, ErrLocked)
}

func TestVerify(t *testing.T) {
	a := newTestAuthenticator(t, nil)
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		assert.Nil(t, a.Verify(ctx, ""))
	})

	t.Run("admin token", func(t *testing.T) {
		id := a.Verify(ctx, "tok123")
		require.NotNil(t, id)
		assert.Equal(t, "Yaw Mensah", id.Name)
		assert.Equal(t, "admin@ypambuzi.com", id.Username)
		assert.True(t, id.IsAdminRole())
	})

	t.Run("staff token verifies but is not admin", func(t *testing.T) {
		id := a.Verify(ctx, "staff")
		require.NotNil(t, id)
		assert.Equal(t, "kofi", id.Name)
		assert.False(t, id.IsAdminRole())
	})

	t.Run("rejected token", func(t *testing.T) {
		assert.Nil(t, a.Verify(ctx, "expired"))
	})

	t.Run("malformed payload", func(t *testing.T) {
		assert.Nil(t, a.Verify(ctx, "broken"))
	})

	t.Run("backend down", func(t *testing.T) {
		down := NewAuthenticator(remote.New("http://127.0.0.1:1", 200*time.Millisecond), nil)
		assert.Nil(t, down.Verify(ctx, "tok123"))
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	a := NewAuthenticator(nil, nil)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		a.Logout(rec)
		cs := cookiesByName(rec)
		for _, name := range []string{TokenCookie, UserCookie} {
			require.Contains(t, cs, name)
			assert.Equal(t, "", cs[name].Value)
			assert.Equal(t, -1, cs[name].MaxAge)
			assert.Equal(t, "/", cs[name].Path)
		}
	}
}

func TestReadSession(t *testing.T) {
	a := NewAuthenticator(nil, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, writeSession(rec, Session{Token: "tok", User: Identity{ID: 3, Email: "x@y.z", Name: "X Y"}}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	tok, u := a.ReadSession(req)
	assert.Equal(t, "tok", tok)
	require.NotNil(t, u)
	assert.Equal(t, "X Y", u.Name)

	t.Run("corrupt user cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: UserCookie, Value: "%7Bnot-json"})
		tok, u := a.ReadSession(req)
		assert.Empty(t, tok)
		assert.Nil(t, u)
	})
}

func TestNormalize(t *testing.T) {
	login := NormalizeLogin(remoteUser{ID: 5, Email: "e@x.io", Username: "eve", Role: "admin", IsAdmin: true})
	assert.Equal(t, "eve", login.Name)

	login = NormalizeLogin(remoteUser{ID: 5, Email: "e@x.io", Name: "Eve A"})
	assert.Equal(t, "e@x.io", login.Username)
	assert.Equal(t, "Eve A", login.Name)

	v := NormalizeVerify(remoteUser{ID: 5, Email: "e@x.io", FirstName: "  Eve ", LastName: ""})
	assert.Equal(t, "Eve", v.Name)

	v = NormalizeVerify(remoteUser{ID: 5, Email: "e@x.io"})
	assert.Equal(t, "e@x.io", v.Name)
}
