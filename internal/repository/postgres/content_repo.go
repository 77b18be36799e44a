package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contentRepo struct{ pool *pgxpool.Pool }

// Documents are returned with their id merged in, so clients see flat records.
func (r *contentRepo) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := r.pool.Query(ctx, `
SELECT body || jsonb_build_object('id', id)
  FROM content_items
 WHERE collection=$1
 ORDER BY sort_order, created_at`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *contentRepo) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT body || jsonb_build_object('id', id) FROM content_items WHERE collection=$1 AND id=$2`,
		collection, id,
	).Scan(&doc)
	return doc, notFound(err)
}

func (r *contentRepo) Put(ctx context.Context, collection, id string, doc json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO content_items (collection, id, body) VALUES ($1,$2,$3)
ON CONFLICT (collection, id) DO UPDATE SET body=EXCLUDED.body, updated_at=now()`,
		collection, id, []byte(doc))
	return err
}
