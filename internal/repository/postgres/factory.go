package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/ypa-web/internal/repository"
)

type Repositories struct {
	Users    repo.Users
	Bookings repo.Bookings
	Contact  repo.ContactMessages
	Reviews  repo.Reviews
	Content  repo.Content
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Bookings: &bookingsRepo{pool},
		Contact:  &contactRepo{pool},
		Reviews:  &reviewsRepo{pool},
		Content:  &contentRepo{pool},
	}
}

// notFound maps pgx's empty result to the repository sentinel.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}
