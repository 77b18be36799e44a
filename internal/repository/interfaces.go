package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/baharkarakas/ypa-web/internal/models"
)

var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Bookings interface {
	Create(ctx context.Context, b models.NewBooking) (models.Booking, error)
	// List returns every booking when status is empty.
	List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error)
}

type ContactMessages interface {
	Create(ctx context.Context, m models.NewContactMessage) (models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	SetRead(ctx context.Context, id string, read bool) (models.ContactMessage, error)
}

type Reviews interface {
	Create(ctx context.Context, r models.NewReview) (models.Review, error)
	List(ctx context.Context, approvedOnly bool) ([]models.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) (models.Review, error)
	Delete(ctx context.Context, id string) error
}

// Content stores catalog records (menu, events, banners, blog, media) as
// opaque JSON documents keyed by collection and id.
type Content interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Put(ctx context.Context, collection, id string, doc json.RawMessage) error
}
