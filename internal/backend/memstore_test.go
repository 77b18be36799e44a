package backend

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/ypa-web/internal/models"
	repo "github.com/baharkarakas/ypa-web/internal/repository"
)

// In-memory repositories for handler and end-to-end tests.

type memUsers struct {
	mu   sync.Mutex
	byID map[int64]models.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]models.User{}} }

func (m *memUsers) Create(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = int64(len(m.byID) + 1)
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

type memBookings struct {
	mu   sync.Mutex
	rows []models.Booking
}

func (m *memBookings) Create(_ context.Context, nb models.NewBooking) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := models.Booking{
		ID: "b" + strconv.Itoa(len(m.rows)+1), CustomerName: nb.CustomerName, CustomerEmail: nb.CustomerEmail,
		CustomerPhone: nb.CustomerPhone, BookingDate: nb.BookingDate, BookingTime: nb.BookingTime,
		PartySize: nb.PartySize, SpecialRequests: nb.SpecialRequests, Status: models.BookingPending,
	}
	m.rows = append(m.rows, b)
	return b, nil
}

func (m *memBookings) List(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.rows {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = status
			return m.rows[i], nil
		}
	}
	return models.Booking{}, repo.ErrNotFound
}

type memContact struct {
	mu   sync.Mutex
	rows []models.ContactMessage
}

func (m *memContact) Create(_ context.Context, nm models.NewContactMessage) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.ContactMessage{ID: "c" + strconv.Itoa(len(m.rows)+1), Name: nm.Name, Email: nm.Email, Phone: nm.Phone, Subject: nm.Subject, Message: nm.Message}
	m.rows = append(m.rows, c)
	return c, nil
}

func (m *memContact) List(context.Context) ([]models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ContactMessage{}, m.rows...), nil
}

func (m *memContact) SetRead(_ context.Context, id string, read bool) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].IsRead = read
			return m.rows[i], nil
		}
	}
	return models.ContactMessage{}, repo.ErrNotFound
}

type memReviews struct {
	mu   sync.Mutex
	rows []models.Review
}

func (m *memReviews) Create(_ context.Context, nr models.NewReview) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv := models.Review{ID: "r" + strconv.Itoa(len(m.rows)+1), CustomerName: nr.CustomerName, CustomerEmail: nr.CustomerEmail, Rating: nr.Rating, Comment: nr.Comment, MenuItemID: nr.MenuItemID}
	m.rows = append(m.rows, rv)
	return rv, nil
}

func (m *memReviews) List(_ context.Context, approvedOnly bool) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, rv := range m.rows {
		if !approvedOnly || rv.IsApproved {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (m *memReviews) SetApproved(_ context.Context, id string, approved bool) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].IsApproved = approved
			return m.rows[i], nil
		}
	}
	return models.Review{}, repo.ErrNotFound
}

func (m *memReviews) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type memContent struct {
	mu   sync.Mutex
	docs map[string]map[string]json.RawMessage
}

func newMemContent() *memContent { return &memContent{docs: map[string]map[string]json.RawMessage{}} }

func (m *memContent) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []json.RawMessage{}
	for _, d := range m.docs[collection] {
		out = append(out, d)
	}
	return out, nil
}

func (m *memContent) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[collection][id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return d, nil
}

func (m *memContent) Put(_ context.Context, collection, id string, doc json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = map[string]json.RawMessage{}
	}
	m.docs[collection][id] = doc
	return nil
}

func newMemStores() Stores {
	return Stores{
		Bookings: &memBookings{},
		Contact:  &memContact{},
		Reviews:  &memReviews{},
		Content:  newMemContent(),
	}
}
