// Package auth turns admin credentials into a cookie-backed session and
// turns that session back into a verified identity.
package auth

import (
	"encoding/json"
	"strings"
)

const RoleAdmin = "admin"

// Identity is the user record kept next to the bearer token.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

// IsAdminRole reports whether the identity may enter the admin area.
// Both the flag and the role must agree.
func (i *Identity) IsAdminRole() bool {
	return i != nil && i.IsAdmin && i.Role == RoleAdmin
}

// Session is a bearer token plus the identity it was issued for.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// remoteUser is the union of the user shapes returned by /auth/login and /auth/verify.
type remoteUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"is_admin"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	Token       string          `json:"token"`
	User        json.RawMessage `json:"user"`
}

// NormalizeLogin maps a /auth/login user payload.
//
//	username = username, else email
//	name     = name, else username, else email
func NormalizeLogin(u remoteUser) Identity {
	username := firstNonEmpty(u.Username, u.Email)
	return Identity{
		ID:       u.ID,
		Username: username,
		Email:    u.Email,
		Name:     firstNonEmpty(u.Name, username),
		Role:     u.Role,
		IsAdmin:  u.IsAdmin,
	}
}

// NormalizeVerify maps a /auth/verify payload.
//
//	username = username, else email
//	name     = "first last" (trimmed), else username, else email
func NormalizeVerify(u remoteUser) Identity {
	username := firstNonEmpty(u.Username, u.Email)
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	return Identity{
		ID:       u.ID,
		Username: username,
		Email:    u.Email,
		Name:     firstNonEmpty(full, username),
		Role:     u.Role,
		IsAdmin:  u.IsAdmin,
	}
}

func (u remoteUser) wellFormed() bool {
	return u.ID != 0 || u.Email != ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
