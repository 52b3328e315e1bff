package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/infra/state"
)

func TestLoginStoresCredentials(t *testing.T) {
	fx := newFixture(t)
	w := fx.login(t)

	creds, err := fx.store.LoadSession(context.Background(), w.ID())
	require.NoError(t, err)
	assert.Equal(t, "tok-ana@example.com", creds.Token)
	assert.Contains(t, string(creds.User), `"sub":"u1"`)
	assert.Equal(t, 1, fx.manager.Len())
}

func TestLoginFailureStoresNothing(t *testing.T) {
	fx := newFixture(t)
	fx.remote.loginErr = apperr.New(apperr.KindAuthentication, "login response carries no token")

	_, err := fx.manager.Login(context.Background(), "ana@example.com", "secret")
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))
	assert.Zero(t, fx.store.sessionSaves())
	assert.Zero(t, fx.manager.Len())
}

func TestGetRestoresFromStore(t *testing.T) {
	fx := newFixture(t)
	w := fx.login(t)

	restarted := NewManager(fx.remote, fx.store, nil, nil)
	got, err := restarted.Get(context.Background(), w.ID())
	require.NoError(t, err)
	assert.Equal(t, "u1", got.User().ID)

	again, err := restarted.Get(context.Background(), w.ID())
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestGetClearsHalfStoredSession(t *testing.T) {
	ctx := context.Background()
	cases := map[string]state.Credentials{
		"no user":        {Token: "tok"},
		"malformed user": {Token: "tok", User: []byte(`{broken`)},
		"sentinel token": {Token: "undefined", User: []byte(`{"sub":"u1"}`)},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			fx := newFixture(t)
			require.NoError(t, fx.store.SaveSession(ctx, "ws", creds))
			require.NoError(t, fx.store.SaveCache(ctx, "ws", state.KindCatalog, []byte(`[]`)))

			_, err := fx.manager.Get(ctx, "ws")
			assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

			_, err = fx.store.LoadSession(ctx, "ws")
			assert.ErrorIs(t, err, state.ErrNotFound)
			_, err = fx.store.LoadCache(ctx, "ws", state.KindCatalog)
			assert.ErrorIs(t, err, state.ErrNotFound)
		})
	}
}

func TestGetUnknown(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.manager.Get(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = fx.manager.Get(context.Background(), "nope")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUnauthorizedClearsCredentials(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	w := fx.login(t)
	fx.remote.productsErr = apperr.New(apperr.KindUnauthorized, "session expired")

	_, err := w.Catalog(ctx)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.False(t, w.Authenticated())

	_, err = fx.store.LoadSession(ctx, w.ID())
	assert.ErrorIs(t, err, state.ErrNotFound)
	_, err = fx.manager.Get(ctx, w.ID())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Zero(t, fx.manager.Len())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	w := fx.login(t)
	_, err := w.Catalog(ctx)
	require.NoError(t, err)

	require.NoError(t, fx.manager.Logout(ctx, w.ID()))
	assert.False(t, w.Authenticated())
	_, err = fx.store.LoadCache(ctx, w.ID(), state.KindCatalog)
	assert.ErrorIs(t, err, state.ErrNotFound)
	_, err = fx.manager.Get(ctx, w.ID())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}
