package notes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/quote"
)

func sampleQuote() quote.Quote {
	return quote.Quote{
		Number:   "ORC-0001",
		Customer: quote.Customer{Name: "Maria"},
		Items: []quote.Item{
			{Description: "Pintura", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(10)},
		},
	}
}

func TestSuggestWithoutKeyUsesFallback(t *testing.T) {
	s := New(Config{BaseURL: "http://127.0.0.1:1"}, nil, nil)
	assert.Equal(t, Fallback, s.Suggest(context.Background(), sampleQuote()))
}

func TestSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m", req.Model)
		assert.Contains(t, req.Messages[1].Content, "2x Pintura")
		assert.Contains(t, req.Messages[1].Content, "Maria")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  Obrigado, Maria!  "}}]}`)
	}))
	defer srv.Close()

	s := New(Config{BaseURL: srv.URL, APIKey: "k", Model: "m"}, srv.Client(), nil)
	assert.Equal(t, "Obrigado, Maria!", s.Suggest(context.Background(), sampleQuote()))
}

func TestSuggestFallbacks(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"server error": {http.StatusInternalServerError, `{}`, Fallback},
		"no choices":   {http.StatusOK, `{"choices":[]}`, Fallback},
		"empty text":   {http.StatusOK, `{"choices":[{"message":{"content":""}}]}`, EmptyAnswer},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()
			s := New(Config{BaseURL: srv.URL, APIKey: "k"}, srv.Client(), nil)
			assert.Equal(t, tc.want, s.Suggest(context.Background(), sampleQuote()))
		})
	}
}
