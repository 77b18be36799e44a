package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ypa-web/internal/models"
)

type contactRepo struct{ pool *pgxpool.Pool }

const contactCols = `id, name, email, phone, subject, message, is_read, created_at`

func scanContact(row interface{ Scan(...any) error }) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt)
	return m, notFound(err)
}

func (r *contactRepo) Create(ctx context.Context, m models.NewContactMessage) (models.ContactMessage, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING `+contactCols,
		uuid.NewString(), m.Name, m.Email, m.Phone, m.Subject, m.Message,
	))
}

func (r *contactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactCols+` FROM contact_messages ORDER BY created_at DESC LIMIT 500`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *contactRepo) SetRead(ctx context.Context, id string, read bool) (models.ContactMessage, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`UPDATE contact_messages SET is_read=$2 WHERE id=$1 RETURNING `+contactCols, id, read))
}
