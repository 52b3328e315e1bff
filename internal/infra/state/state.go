// Package state persists what a workspace needs to survive a restart: its
// credentials and a display cache of the provider profile and catalog.
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned when nothing is stored under the key.
var ErrNotFound = errors.New("state: not found")

// Cache kinds.
const (
	KindProvider = "provider"
	KindCatalog  = "catalog"
)

type Credentials struct {
	Token string
	User  []byte
}

type Store interface {
	LoadSession(ctx context.Context, workspaceID string) (Credentials, error)
	SaveSession(ctx context.Context, workspaceID string, c Credentials) error
	// ClearSession removes the credentials and every cache entry of the workspace.
	ClearSession(ctx context.Context, workspaceID string) error
	LoadCache(ctx context.Context, workspaceID, kind string) ([]byte, error)
	SaveCache(ctx context.Context, workspaceID, kind string, payload []byte) error
}
