package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUSDCtoNGNrate(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"usd-coin":{"ngn":1587.42}}`))
	}))
	defer srv.Close()

	c := NewCoinGeckoClient(srv.URL)
	now := time.Now()
	c.now = func() time.Time { return now }

	rate, err := c.GetUSDCtoNGNrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1587.42", rate.String())

	_, err = c.GetUSDCtoNGNrate(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "cached")

	now = now.Add(2 * time.Minute)
	_, err = c.GetUSDCtoNGNrate(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetRateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `{}`},
		{"missing currency", http.StatusOK, `{"usd-coin":{"usd":1}}`},
		{"garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCoinGeckoClient(srv.URL).GetUSDCtoNGNrate(context.Background())
			assert.ErrorIs(t, err, ErrRateUnavailable)
		})
	}
}
