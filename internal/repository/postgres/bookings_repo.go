package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ypa-web/internal/models"
)

type bookingsRepo struct{ pool *pgxpool.Pool }

const bookingCols = `id, customer_name, customer_email, customer_phone, to_char(booking_date, 'YYYY-MM-DD'),
       booking_time, party_size, special_requests, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.BookingDate,
		&b.BookingTime, &b.PartySize, &b.SpecialRequests, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, notFound(err)
}

func (r *bookingsRepo) Create(ctx context.Context, nb models.NewBooking) (models.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, `
INSERT INTO bookings (id, customer_name, customer_email, customer_phone, booking_date, booking_time, party_size, special_requests, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING `+bookingCols,
		uuid.NewString(), nb.CustomerName, nb.CustomerEmail, nb.CustomerPhone, nb.BookingDate,
		nb.BookingTime, nb.PartySize, nb.SpecialRequests, models.BookingPending,
	))
}

func (r *bookingsRepo) List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+bookingCols+`
  FROM bookings
 WHERE $1 = '' OR status = $1
 ORDER BY booking_date DESC, booking_time DESC
 LIMIT 500`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingsRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx,
		`UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+bookingCols,
		id, status,
	))
}
