// Package market fetches price history and distills it into the trend,
// volatility, and volume features that drive the musical parameter
// mapping.
package market

import "math"

// PricePoint is one sampled price/volume observation.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // unix millis
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
}

// History is the processed price series for one instrument.
type History struct {
	Instrument         string
	Points             []PricePoint
	DailyChanges       []float64 // percent change between consecutive points
	CurrentPrice       float64
	TotalChangePercent float64
	Volatility         float64 // stddev of daily changes, percent
	AverageVolume      float64
	CurrentVolume      float64
	Days               int
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	m := mean(vs)
	var sum float64
	for _, v := range vs {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vs)-1))
}
