package market

import (
	"fmt"
	"math"

	"github.com/sonifex/marketwave/internal/music"
)

// TrendInfo describes the price trend over the analyzed window.
type TrendInfo struct {
	Direction     music.Trend `json:"direction"`
	Strength      float64     `json:"strength"` // 0-1
	ChangePercent float64     `json:"changePercent"`
}

// VolatilityInfo classifies how jumpy the series is.
type VolatilityInfo struct {
	Level       string  `json:"level"` // low | medium | high
	Average     float64 `json:"average"`
	Consistency float64 `json:"consistency"` // 0-1, higher = steadier
	HasSpikes   bool    `json:"hasSpikes"`
}

// VolumeInfo describes trading volume behavior.
type VolumeInfo struct {
	Trend         string  `json:"trend"` // increasing | decreasing | stable
	RelativeLevel float64 `json:"relativeLevel"`
	Average       float64 `json:"average"`
}

// Spike is a single outsized price move.
type Spike struct {
	Day           int     `json:"day"`
	ChangePercent float64 `json:"changePercent"`
	Magnitude     float64 `json:"magnitude"`
}

// Analysis is the full feature set extracted from one history window.
type Analysis struct {
	Trend      TrendInfo      `json:"priceTrend"`
	Volatility VolatilityInfo `json:"volatilityPatterns"`
	Volume     VolumeInfo     `json:"volumePatterns"`
	Spikes     []Spike        `json:"spikes"`
	Momentum   float64        `json:"momentum"` // -1..1
	Sentiment  string         `json:"overallSentiment"`
}

// Analyze extracts trend, volatility, volume, spike, and momentum
// features from a price history.
func Analyze(h History) (Analysis, error) {
	if len(h.Points) == 0 {
		return Analysis{}, fmt.Errorf("analyze %s: no price data", h.Instrument)
	}

	prices := make([]float64, len(h.Points))
	volumes := make([]float64, len(h.Points))
	for i, p := range h.Points {
		prices[i] = p.Price
		volumes[i] = p.Volume
	}

	a := Analysis{
		Trend:      analyzeTrend(prices),
		Volatility: analyzeVolatility(h.DailyChanges),
		Volume:     analyzeVolume(volumes),
		Spikes:     identifySpikes(h.DailyChanges),
		Momentum:   calculateMomentum(prices),
	}
	a.Sentiment = determineSentiment(a.Trend, a.Spikes)
	return a, nil
}

// analyzeTrend compares first-half and second-half means; moves beyond
// +-2% count as a direction.
func analyzeTrend(prices []float64) TrendInfo {
	if len(prices) < 2 {
		return TrendInfo{Direction: music.TrendStable}
	}

	half := len(prices) / 2
	firstAvg := mean(prices[:half])
	secondAvg := mean(prices[half:])
	if firstAvg == 0 {
		return TrendInfo{Direction: music.TrendStable}
	}

	changePct := (secondAvg - firstAvg) / firstAvg * 100

	direction := music.TrendStable
	switch {
	case changePct > 2:
		direction = music.TrendRising
	case changePct < -2:
		direction = music.TrendFalling
	}

	return TrendInfo{
		Direction:     direction,
		Strength:      math.Min(math.Abs(changePct)/10, 1),
		ChangePercent: changePct,
	}
}

func analyzeVolatility(dailyChanges []float64) VolatilityInfo {
	if len(dailyChanges) == 0 {
		return VolatilityInfo{Level: "low", Consistency: 1}
	}

	abs := make([]float64, len(dailyChanges))
	var peak float64
	for i, c := range dailyChanges {
		abs[i] = math.Abs(c)
		if abs[i] > peak {
			peak = abs[i]
		}
	}

	avg := mean(abs)
	level := "low"
	switch {
	case avg > 5:
		level = "high"
	case avg > 2:
		level = "medium"
	}

	consistency := 1.0
	if avg > 0 {
		consistency = math.Max(0, 1-stddev(abs)/avg)
	}

	return VolatilityInfo{
		Level:       level,
		Average:     avg,
		Consistency: consistency,
		HasSpikes:   peak > avg*2,
	}
}

func analyzeVolume(volumes []float64) VolumeInfo {
	if len(volumes) == 0 {
		return VolumeInfo{Trend: "stable", RelativeLevel: 0.5}
	}

	half := len(volumes) / 2
	firstAvg := mean(volumes[:half])
	secondAvg := mean(volumes[half:])

	trend := "stable"
	switch {
	case secondAvg > firstAvg*1.2:
		trend = "increasing"
	case secondAvg < firstAvg*0.8:
		trend = "decreasing"
	}

	lo, hi := volumes[0], volumes[0]
	for _, v := range volumes {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	relative := 0.5
	if hi > lo {
		relative = (mean(volumes) - lo) / (hi - lo)
	}

	return VolumeInfo{Trend: trend, RelativeLevel: relative, Average: mean(volumes)}
}

// identifySpikes flags moves beyond max(3%, mean + 2 stddev).
func identifySpikes(dailyChanges []float64) []Spike {
	if len(dailyChanges) == 0 {
		return nil
	}

	abs := make([]float64, len(dailyChanges))
	for i, c := range dailyChanges {
		abs[i] = math.Abs(c)
	}
	avg := mean(abs)
	threshold := math.Max(3, avg+2*stddev(abs))

	var spikes []Spike
	for i, c := range dailyChanges {
		if math.Abs(c) > threshold {
			magnitude := 0.0
			if avg > 0 {
				magnitude = math.Abs(c) / avg
			}
			spikes = append(spikes, Spike{Day: i, ChangePercent: c, Magnitude: magnitude})
		}
	}
	return spikes
}

// calculateMomentum is the rate of change over the last three points,
// normalized to [-1, 1].
func calculateMomentum(prices []float64) float64 {
	if len(prices) < 3 {
		return 0
	}
	recent := prices[len(prices)-3:]
	if recent[0] == 0 {
		return 0
	}
	m := (recent[2] - recent[0]) / recent[0] * 100 / 10
	return math.Max(-1, math.Min(1, m))
}

func determineSentiment(trend TrendInfo, spikes []Spike) string {
	switch {
	case trend.Direction == music.TrendRising && trend.Strength > 0.5:
		return "bullish"
	case trend.Direction == music.TrendFalling && trend.Strength > 0.5:
		return "bearish"
	case len(spikes) > 0:
		return "volatile"
	default:
		return "neutral"
	}
}
