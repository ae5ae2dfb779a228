package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHistory(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-cg-demo-api-key")
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		assert.Equal(t, "hourly", r.URL.Query().Get("interval"))

		json.NewEncoder(w).Encode(chartResponse{
			Prices:       [][2]float64{{0, 100}, {3600000, 110}, {7200000, 99}},
			TotalVolumes: [][2]float64{{0, 1e9}, {3600000, 2e9}, {7200000, 1.5e9}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "demo-key", 5*time.Second)
	h, err := c.History(context.Background(), "BTC", 7)
	require.NoError(t, err)

	assert.Equal(t, "/coins/bitcoin/market_chart", gotPath)
	assert.Equal(t, "demo-key", gotKey)
	assert.Equal(t, "BTC", h.Instrument)
	assert.Equal(t, 99.0, h.CurrentPrice)
	assert.Equal(t, 1.5e9, h.CurrentVolume)
	assert.Len(t, h.Points, 3)
	assert.Len(t, h.DailyChanges, 2)
}

func TestClientHistoryDailyIntervalForLongWindows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		json.NewEncoder(w).Encode(chartResponse{Prices: [][2]float64{{0, 1}, {1, 2}}})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).History(context.Background(), "ETH", 30)
	require.NoError(t, err)
}

func TestClientHistoryRejectsUnknownInstrument(t *testing.T) {
	c := NewClient("http://unused", "", time.Second)
	_, err := c.History(context.Background(), "DOGE", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported instrument")
}

func TestClientHistoryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).History(context.Background(), "BTC", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClientHistoryEmptyPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chartResponse{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).History(context.Background(), "SOL", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price data")
}
