package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/apperr"
)

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{Token: "undefined"}.IsAuthenticated())
	assert.False(t, Session{Token: "null"}.IsAuthenticated())
	assert.False(t, Session{Token: "   "}.IsAuthenticated())
	assert.True(t, Session{Token: "eyJ.abc.def"}.IsAuthenticated())
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("", User{ID: "u1"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindAuthentication))

	s, err := New(" tok ", User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
}

func TestRestore(t *testing.T) {
	raw, err := MarshalUser(User{ID: "u1", Email: "ana@example.com", CompanyID: "c1"})
	require.NoError(t, err)

	s, err := Restore("tok", raw)
	require.NoError(t, err)
	assert.Equal(t, "c1", s.User.Tenant())
	assert.True(t, s.IsAuthenticated())

	_, err = Restore("", raw)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = Restore("tok", nil)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = Restore("tok", []byte("{not json"))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = Restore("tok", []byte("{}"))
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestTenantFallsBackToUserID(t *testing.T) {
	assert.Equal(t, "u1", User{ID: "u1"}.Tenant())
}
