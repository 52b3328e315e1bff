package api

import (
	"context"
	"net/http"
	"strings"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/session"
)

// Login exchanges credentials for a session. Every failure, including a 2xx
// answer without a token, is reported as an authentication error.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Session{}, apperr.Validation("email and password are required")
	}

	raw, err := c.do(ctx, nil, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindUnauthorized:
			return session.Session{}, apperr.Wrap(apperr.KindAuthentication, err, "invalid credentials")
		case apperr.KindRemote:
			return session.Session{}, apperr.Wrap(apperr.KindAuthentication, err, apperr.Message(err))
		case apperr.KindMalformed:
			return session.Session{}, apperr.Wrap(apperr.KindAuthentication, err, "login response is unreadable")
		}
		return session.Session{}, err
	}

	resp, err := decodeOne[loginResponse](raw, "login response")
	if err != nil {
		return session.Session{}, apperr.Wrap(apperr.KindAuthentication, err, "login response is unreadable")
	}
	if resp == nil || resp.token() == "" {
		return session.Session{}, apperr.Wrap(apperr.KindAuthentication,
			apperr.New(apperr.KindMalformed, "no token in login response"), "login failed")
	}

	var user session.User
	if resp.User != nil {
		user = resp.User.toDomain()
	}
	if user.Email == "" {
		user.Email = email
	}
	return session.New(resp.token(), user)
}
