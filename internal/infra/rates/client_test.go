package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-api/internal/domain"
)

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		assert.Equal(t, "USD", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2026-08-28","rates":{"USD":1.0834}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	rate, err := c.Latest(context.Background(), "usd")
	require.NoError(t, err)

	assert.Equal(t, "EUR", rate.Base)
	assert.Equal(t, "USD", rate.Target)
	assert.Equal(t, 1.0834, rate.Rate)
	assert.Equal(t, "2026-08-28", rate.Date)
}

func TestLatestValidatesCurrencyCode(t *testing.T) {
	c := NewClient("http://unused.invalid", time.Second)

	for _, code := range []string{"", "US", "DOLLAR", "U1D"} {
		_, err := c.Latest(context.Background(), code)
		assert.ErrorIs(t, err, domain.ErrValidation, "code %q", code)
	}
}

func TestLatestUnsupportedCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2026-08-28","rates":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Latest(context.Background(), "XXX")
	assert.Error(t, err)
}

func TestLatestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Latest(context.Background(), "USD")
	assert.Error(t, err)
}
