package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/models"
	"github.com/baharkarakas/ypa-web/internal/remote"
)

func adminFixtures(path, token string) (any, error) {
	if token != "tok123" {
		return nil, &remote.StatusError{Status: http.StatusUnauthorized}
	}
	switch path {
	case "/bookings", "/bookings?status=pending":
		return []models.Booking{
			{ID: "1", BookingDate: "2025-06-20", PartySize: 2, Status: models.BookingPending},
			{ID: "2", BookingDate: "2025-06-21", PartySize: 6, Status: models.BookingConfirmed},
			{ID: "3", BookingDate: "2025-07-01", PartySize: 12, Status: models.BookingCancelled},
		}, nil
	case "/contact":
		return []models.ContactMessage{{ID: "c1"}, {ID: "c2", IsRead: true}}, nil
	case "/reviews":
		return []models.Review{{ID: "r1", Rating: 5, IsApproved: true}, {ID: "r2", Rating: 4}}, nil
	case "/menu":
		return []models.MenuItem{{ID: "m1", Name: "Waakye"}}, nil
	}
	return nil, &remote.StatusError{Status: http.StatusNotFound}
}

func newAdmin(fr *fakeRemote) *AdminService {
	return NewAdminService(fr, NewCatalogService(fr))
}

func TestAdminLists(t *testing.T) {
	fr := &fakeRemote{get: adminFixtures}
	s := newAdmin(fr)
	ctx := context.Background()

	b, err := s.ListBookings(ctx, "tok123", "pending")
	require.NoError(t, err)
	assert.Len(t, b, 3)
	assert.Contains(t, fr.calls, "GET /bookings?status=pending")

	_, err = s.ListBookings(ctx, "tok123", "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.ListReviews(ctx, "other")
	assert.Equal(t, http.StatusUnauthorized, remote.StatusOf(err))

	raw, err := s.Catalog().Collection(ctx, "tok123", models.CollectionMenu)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Waakye")

	_, err = s.Catalog().Collection(ctx, "tok123", "users")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestAdminActions(t *testing.T) {
	var bodies []any
	fr := &fakeRemote{
		put: func(path, token string, in any) (any, error) {
			bodies = append(bodies, in)
			return map[string]any{"id": "x"}, nil
		},
		del: func(path, token string) error { return nil },
	}
	s := newAdmin(fr)
	ctx := context.Background()

	_, err := s.SetBookingStatus(ctx, "tok123", "42", models.BookingConfirmed)
	require.NoError(t, err)
	_, err = s.SetBookingStatus(ctx, "tok123", "42", "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.ApproveReview(ctx, "tok123", "r/1")
	require.NoError(t, err)
	require.NoError(t, s.DeleteReview(ctx, "tok123", "r1"))
	_, err = s.MarkContactRead(ctx, "tok123", "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /bookings/42",
		"PUT /reviews/r%2F1",
		"DELETE /reviews/r1",
		"PUT /contact/c1",
	}, fr.calls)
	assert.Equal(t, map[string]any{"status": models.BookingConfirmed}, bodies[0])
}

func TestReportAndDashboard(t *testing.T) {
	fr := &fakeRemote{get: adminFixtures}
	s := newAdmin(fr)
	id := &auth.Identity{ID: 1, Role: "admin", IsAdmin: true}

	d, err := s.Dashboard(context.Background(), "tok123", id)
	require.NoError(t, err)
	assert.Same(t, id, d.User)
	assert.ElementsMatch(t, []string{"GET /bookings", "GET /contact", "GET /reviews"}, fr.calls)

	r := d.Report
	assert.Equal(t, 3, r.Bookings.Total)
	assert.Equal(t, 20, r.Bookings.Guests)
	assert.Equal(t, map[string]int{"pending": 1, "confirmed": 1, "cancelled": 1}, r.Bookings.ByStatus)
	assert.Equal(t, map[string]int{"2025-06": 2, "2025-07": 1}, r.Bookings.ByMonth)
	assert.Equal(t, map[string]int{"1-2": 1, "5-8": 1, "9-12": 1}, r.Bookings.PartySizes)
	assert.Equal(t, MessageStats{Total: 2, Unread: 1}, r.Messages)
	assert.Equal(t, 4.5, r.Reviews.AverageRating)
	assert.Equal(t, 1, r.Reviews.Pending)
	assert.Equal(t, 1, r.Reviews.Distribution["4"])

	_, err = s.Report(context.Background(), "bad")
	assert.Error(t, err)
}

func TestReportEmpty(t *testing.T) {
	r := BuildReport(nil, nil, nil)
	assert.Zero(t, r.Reviews.AverageRating)
	assert.Equal(t, 0, r.Bookings.ByStatus["pending"])
	assert.Len(t, r.Reviews.Distribution, 5)
}

func TestReportIgnoresOutOfRangeRatings(t *testing.T) {
	r := BuildReport(nil, nil, []models.Review{
		{ID: "r1", Rating: 4, IsApproved: true},
		{ID: "r2", Rating: 0},
		{ID: "r3", Rating: 7, IsApproved: true},
		{ID: "r4", Rating: 5},
	})
	assert.Equal(t, 4, r.Reviews.Total)
	assert.Equal(t, 4.5, r.Reviews.AverageRating)
	assert.Len(t, r.Reviews.Distribution, 5)
	assert.NotContains(t, r.Reviews.Distribution, "0")
	assert.NotContains(t, r.Reviews.Distribution, "7")
	assert.Equal(t, 1, r.Reviews.Distribution["5"])
}

func TestRemoteDetail(t *testing.T) {
	assert.Equal(t, "nope", remoteDetail(&remote.StatusError{Status: 400, Detail: "nope"}))
	assert.Equal(t, "request rejected", remoteDetail(&remote.StatusError{Status: 500}))
	assert.Equal(t, "service temporarily unavailable", remoteDetail(errors.New("x")))
}
