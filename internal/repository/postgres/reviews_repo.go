package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ypa-web/internal/models"
	"github.com/baharkarakas/ypa-web/internal/repository"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

const reviewCols = `id, customer_name, customer_email, rating, comment, menu_item_id, is_approved, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.CustomerName, &rv.CustomerEmail, &rv.Rating, &rv.Comment, &rv.MenuItemID, &rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, notFound(err)
}

func (r *reviewsRepo) Create(ctx context.Context, nr models.NewReview) (models.Review, error) {
	return scanReview(r.pool.QueryRow(ctx,
		`INSERT INTO reviews (id, customer_name, customer_email, rating, comment, menu_item_id)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING `+reviewCols,
		uuid.NewString(), nr.CustomerName, nr.CustomerEmail, nr.Rating, nr.Comment, nr.MenuItemID,
	))
}

func (r *reviewsRepo) List(ctx context.Context, approvedOnly bool) ([]models.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE NOT $1 OR is_approved ORDER BY created_at DESC LIMIT 500`,
		approvedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) SetApproved(ctx context.Context, id string, approved bool) (models.Review, error) {
	return scanReview(r.pool.QueryRow(ctx,
		`UPDATE reviews SET is_approved=$2, updated_at=now() WHERE id=$1 RETURNING `+reviewCols, id, approved))
}

func (r *reviewsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
