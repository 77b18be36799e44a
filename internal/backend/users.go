package backend

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/ypa-web/internal/models"
	repo "github.com/baharkarakas/ypa-web/internal/repository"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

type UserService struct {
	r  repo.Users
	tm *TokenManager
}

func NewUserService(r repo.Users, tm *TokenManager) *UserService {
	return &UserService{r: r, tm: tm}
}

func (s *UserService) Register(ctx context.Context, u models.User, password string) (models.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 6 {
		return models.User{}, errors.New("password too short")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.r.Create(ctx, u)
}

// Login checks the password and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.r.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}
	if VerifyPassword(password, u.PasswordHash) != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	tok, _, err := s.tm.Issue(u)
	if err != nil {
		return "", models.User{}, err
	}
	return tok, u, nil
}

// Verify resolves a token to the current user record, so role changes
// apply to tokens already issued.
func (s *UserService) Verify(ctx context.Context, token string) (models.User, error) {
	c, err := s.tm.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.r.GetByID(ctx, c.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrInvalidToken
	}
	return u, err
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.r.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	u, err := s.Register(ctx, models.User{
		Username:  "admin",
		Email:     email,
		FirstName: "Admin",
		Role:      "admin",
		IsAdmin:   true,
	}, password)
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "id", u.ID, "email", u.Email)
	return nil
}
