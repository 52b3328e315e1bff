// Package session holds the bearer token and user of a logged-in workspace.
package session

import (
	"encoding/json"
	"strings"

	"orcafacil/go_backend/internal/domain/apperr"
)

type User struct {
	ID        string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CompanyID string `json:"companyId,omitempty"`
}

// Tenant is the id that scopes catalog, quotes and provider data.
func (u User) Tenant() string {
	if u.CompanyID != "" {
		return u.CompanyID
	}
	return u.ID
}

type Session struct {
	Token string
	User  User
}

// IsAuthenticated is true only for a real token; the "undefined" and "null"
// strings left behind by broken clients do not count.
func (s Session) IsAuthenticated() bool {
	return validToken(s.Token)
}

func validToken(token string) bool {
	t := strings.TrimSpace(token)
	return t != "" && t != "undefined" && t != "null"
}

// New builds a session from a login response.
func New(token string, user User) (Session, error) {
	if !validToken(token) {
		return Session{}, apperr.New(apperr.KindAuthentication, "login response carries no token")
	}
	if strings.TrimSpace(user.ID) == "" && strings.TrimSpace(user.Email) == "" {
		return Session{}, apperr.New(apperr.KindAuthentication, "login response carries no user")
	}
	return Session{Token: strings.TrimSpace(token), User: user}, nil
}

// MarshalUser serializes the user for the state store.
func MarshalUser(u User) ([]byte, error) {
	return json.Marshal(u)
}

// Restore rebuilds a session from stored state. A missing token or an absent
// or unreadable user is an error; callers clear both halves in that case.
func Restore(token string, rawUser []byte) (Session, error) {
	if !validToken(token) {
		return Session{}, apperr.New(apperr.KindUnauthorized, "no stored token")
	}
	if len(rawUser) == 0 {
		return Session{}, apperr.New(apperr.KindUnauthorized, "no stored user")
	}
	var u User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return Session{}, apperr.Wrap(apperr.KindUnauthorized, err, "stored user is malformed")
	}
	if strings.TrimSpace(u.ID) == "" && strings.TrimSpace(u.Email) == "" {
		return Session{}, apperr.New(apperr.KindUnauthorized, "stored user is empty")
	}
	return Session{Token: token, User: u}, nil
}
