package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.KindValidation:     http.StatusBadRequest,
		apperr.KindUnauthorized:   http.StatusUnauthorized,
		apperr.KindAuthentication: http.StatusUnauthorized,
		apperr.KindTransport:      http.StatusBadGateway,
		apperr.KindMalformed:      http.StatusBadGateway,
		apperr.KindRemote:         http.StatusBadGateway,
		apperr.KindNotFound:       http.StatusNotFound,
		apperr.KindConflict:       http.StatusConflict,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusOf(apperr.New(kind, "x")), kind.String())
	}
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}

func TestCatalogItemRequestPrice(t *testing.T) {
	cases := map[string]string{
		`{"name":"a","price":12.5}`:                "12.5",
		`{"name":"a","price":"12,50"}`:             "12.5",
		`{"name":"a","price_input":"R$ 1.500,00"}`: "1500",
		`{"name":"a"}`:                             "0",
	}
	for body, want := range cases {
		var req CatalogItemRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		it, err := req.item("id")
		require.NoError(t, err, body)
		assert.Equal(t, want, it.Price.String(), body)
	}

	var req CatalogItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"lots"}`), &req))
	_, err := req.item("")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
