package services

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/models"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// AdminService proxies back-office reads and actions with the admin's bearer token.
type AdminService struct {
	remote  Remote
	catalog *CatalogService
}

func NewAdminService(r Remote, c *CatalogService) *AdminService {
	return &AdminService{remote: r, catalog: c}
}

func (s *AdminService) Catalog() *CatalogService { return s.catalog }

// ListBookings optionally filters by status.
func (s *AdminService) ListBookings(ctx context.Context, token, status string) ([]models.Booking, error) {
	p := "/bookings"
	if status != "" {
		if !models.BookingStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
		p += "?status=" + url.QueryEscape(status)
	}
	var out []models.Booking
	err := s.remote.Get(ctx, p, token, &out)
	return out, err
}

func (s *AdminService) ListReviews(ctx context.Context, token string) ([]models.Review, error) {
	var out []models.Review
	err := s.remote.Get(ctx, "/reviews", token, &out)
	return out, err
}

func (s *AdminService) ListContact(ctx context.Context, token string) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	err := s.remote.Get(ctx, "/contact", token, &out)
	return out, err
}

func (s *AdminService) SetBookingStatus(ctx context.Context, token, id string, status models.BookingStatus) (models.Booking, error) {
	var b models.Booking
	if !status.Valid() {
		return b, ErrInvalidStatus
	}
	err := s.remote.Put(ctx, "/bookings/"+url.PathEscape(id), token, map[string]any{"status": status}, &b)
	return b, err
}

func (s *AdminService) ApproveReview(ctx context.Context, token, id string) (models.Review, error) {
	var rv models.Review
	err := s.remote.Put(ctx, "/reviews/"+url.PathEscape(id), token, map[string]any{"is_approved": true}, &rv)
	return rv, err
}

func (s *AdminService) DeleteReview(ctx context.Context, token, id string) error {
	return s.remote.Delete(ctx, "/reviews/"+url.PathEscape(id), token)
}

func (s *AdminService) MarkContactRead(ctx context.Context, token, id string) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.remote.Put(ctx, "/contact/"+url.PathEscape(id), token, map[string]any{"is_read": true}, &m)
	return m, err
}

// Report reads bookings, messages and reviews concurrently. The first
// failure cancels the others.
func (s *AdminService) Report(ctx context.Context, token string) (Report, error) {
	var (
		bookings []models.Booking
		messages []models.ContactMessage
		reviews  []models.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = s.ListBookings(gctx, token, "")
		return err
	})
	g.Go(func() (err error) {
		messages, err = s.ListContact(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.ListReviews(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return BuildReport(bookings, messages, reviews), nil
}

type Dashboard struct {
	User   *auth.Identity `json:"user"`
	Report Report         `json:"report"`
}

func (s *AdminService) Dashboard(ctx context.Context, token string, id *auth.Identity) (Dashboard, error) {
	r, err := s.Report(ctx, token)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{User: id, Report: r}, nil
}
