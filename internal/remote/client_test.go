package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDo(t *testing.T) {
	t.Run("sends bearer and json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/bookings", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Ada", in["name"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"b1"}`))
		}))
		defer srv.Close()

		var out struct{ ID string }
		err := New(srv.URL+"/", time.Second).Post(context.Background(), "/bookings", "tok", map[string]string{"name": "Ada"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "b1", out.ID)
	})

	t.Run("omits authorization without token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		var out []any
		require.NoError(t, New(srv.URL, time.Second).Get(context.Background(), "/menu", "", &out))
		assert.Empty(t, out)
	})

	t.Run("non-2xx carries detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"slot taken"}`))
		}))
		defer srv.Close()

		err := New(srv.URL, time.Second).Post(context.Background(), "/bookings", "", map[string]int{"a": 1}, nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
		assert.Equal(t, "slot taken", DetailOf(err))
	})

	t.Run("list detail collapses to empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":[{"loc":["body"]}]}`))
		}))
		defer srv.Close()

		err := New(srv.URL, time.Second).Get(context.Background(), "/x", "", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(err))
		assert.Empty(t, DetailOf(err))
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		err := New(srv.URL, 20*time.Millisecond).Get(context.Background(), "/auth/verify", "t", nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.Zero(t, StatusOf(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		var out map[string]any
		err := New(srv.URL, time.Second).Get(context.Background(), "/menu", "", &out)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	})
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/bookings", endpointLabel("/bookings"))
	assert.Equal(t, "/bookings/:id", endpointLabel("/bookings/42"))
	assert.Equal(t, "/bookings/:id", endpointLabel("/bookings/42/extra?x=1"))
	assert.Equal(t, "/auth/verify", endpointLabel("/auth/verify"))
	assert.Equal(t, "/menu", endpointLabel("/menu?category=grill"))
}
