package market

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"encoding/json"
)

// instrumentIDs maps instrument symbols to CoinGecko coin ids.
var instrumentIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
}

// Instruments returns the supported instrument symbols.
func Instruments() []string {
	names := make([]string, 0, len(instrumentIDs))
	for s := range instrumentIDs {
		names = append(names, s)
	}
	return names
}

// IsValidInstrument checks whether the symbol is supported.
func IsValidInstrument(symbol string) bool {
	_, ok := instrumentIDs[symbol]
	return ok
}

// Client fetches historical market data from a CoinGecko-style API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a market data client. An empty apiKey uses the
// unauthenticated public tier.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the market_chart payload: pairs of
// [unix-millis, value].
type chartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// History fetches days of price history for an instrument symbol and
// derives the change/volatility aggregates the analyzer consumes.
func (c *Client) History(ctx context.Context, instrument string, days int) (History, error) {
	var h History

	coinID, ok := instrumentIDs[instrument]
	if !ok {
		return h, fmt.Errorf("unsupported instrument %q", instrument)
	}
	if days <= 0 {
		days = 7
	}

	interval := "hourly"
	if days > 7 {
		interval = "daily"
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))
	q.Set("interval", interval)
	reqURL := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, coinID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return h, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return h, fmt.Errorf("fetch market chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return h, fmt.Errorf("market chart status %d for %s", resp.StatusCode, instrument)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return h, fmt.Errorf("decode market chart: %w", err)
	}
	if len(chart.Prices) == 0 {
		return h, fmt.Errorf("no price data returned for %s", instrument)
	}

	return buildHistory(instrument, days, chart), nil
}

// buildHistory turns the raw chart pairs into the processed series.
func buildHistory(instrument string, days int, chart chartResponse) History {
	h := History{Instrument: instrument, Days: days}

	for i, p := range chart.Prices {
		var volume float64
		if i < len(chart.TotalVolumes) {
			volume = chart.TotalVolumes[i][1]
		}
		h.Points = append(h.Points, PricePoint{
			Timestamp: int64(p[0]),
			Price:     p[1],
			Volume:    volume,
		})

		if i > 0 {
			prev := chart.Prices[i-1][1]
			if prev != 0 {
				h.DailyChanges = append(h.DailyChanges, (p[1]-prev)/prev*100)
			}
		}
	}

	first := h.Points[0]
	last := h.Points[len(h.Points)-1]
	h.CurrentPrice = last.Price
	h.CurrentVolume = last.Volume
	if first.Price != 0 {
		h.TotalChangePercent = (last.Price - first.Price) / first.Price * 100
	}
	h.Volatility = math.Abs(stddev(h.DailyChanges))

	if len(h.Points) > 1 {
		volumes := make([]float64, 0, len(h.Points)-1)
		for _, p := range h.Points[1:] {
			volumes = append(volumes, p.Volume)
		}
		h.AverageVolume = mean(volumes)
	}

	return h
}
