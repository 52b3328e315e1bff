// Package api talks to the quote backend over JSON REST. Only domain types
// leave this package; the wire shapes live in dto.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/session"
)

const errorBodyLimit = 2048

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for the backend at baseURL. A nil hc gets a client with
// a 15s timeout.
func New(baseURL string, hc *http.Client, log *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid quote api url %q", baseURL)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: base, http: hc, log: log}, nil
}

// do sends one request and returns the raw response body, nil for 204 or an
// empty body. sess may be nil for unauthenticated calls.
func (c *Client) do(ctx context.Context, sess *session.Session, method, path string, in any) (json.RawMessage, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sess != nil && sess.IsAuthenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("quote api: request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindTransport, err, "quote backend unreachable")
	}
	defer resp.Body.Close()

	c.log.Debug("quote api",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
		return nil, apperr.New(apperr.KindUnauthorized, "session expired")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, remoteError(resp.StatusCode, msg)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTransport, err, "read response")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, apperr.New(apperr.KindMalformed, "%s %s: response is not JSON", method, path)
	}
	return raw, nil
}

// remoteError prefers the server's "message" (or "error") field.
func remoteError(status int, body []byte) error {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = messageText(payload.Message)
		if msg == "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &apperr.Error{Kind: apperr.KindRemote, Message: msg, Cause: &StatusError{Code: status}}
}

// messageText reads a message that may be a string or a list of strings.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// StatusError records the HTTP status of a failed backend call.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.Code)
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func tenantPath(prefix string, sess session.Session) (string, error) {
	t := strings.TrimSpace(sess.User.Tenant())
	if t == "" {
		return "", apperr.New(apperr.KindUnauthorized, "session has no tenant")
	}
	return prefix + "/" + url.PathEscape(t), nil
}

func idPath(prefix, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", apperr.Validation("id is required")
	}
	return prefix + "/" + url.PathEscape(id), nil
}
