package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/infra/state"
)

func newTestStore(t *testing.T) *StateStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	s, err := NewStateStore(ctx, db)
	require.NoError(t, err)
	return s
}

func TestStateStoreSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ws := uuid.NewString()

	_, err := s.LoadSession(ctx, ws)
	assert.ErrorIs(t, err, state.ErrNotFound)

	require.NoError(t, s.SaveSession(ctx, ws, state.Credentials{Token: "t1", User: []byte(`{"sub":"u1"}`)}))
	require.NoError(t, s.SaveSession(ctx, ws, state.Credentials{Token: "t2", User: []byte(`{"sub":"u1"}`)}))
	got, err := s.LoadSession(ctx, ws)
	require.NoError(t, err)
	assert.Equal(t, "t2", got.Token)

	require.NoError(t, s.SaveCache(ctx, ws, state.KindCatalog, []byte(`[]`)))
	b, err := s.LoadCache(ctx, ws, state.KindCatalog)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	require.NoError(t, s.ClearSession(ctx, ws))
	_, err = s.LoadSession(ctx, ws)
	assert.ErrorIs(t, err, state.ErrNotFound)
	_, err = s.LoadCache(ctx, ws, state.KindCatalog)
	assert.ErrorIs(t, err, state.ErrNotFound)
}
