// Package moment holds finished market moments: one generated clip plus
// the analysis and parameters that produced it.
package moment

import (
	"time"

	"github.com/google/uuid"

	"github.com/sonifex/marketwave/internal/market"
	"github.com/sonifex/marketwave/internal/music"
	"github.com/sonifex/marketwave/internal/waveform"
)

// Snapshot captures the market state a moment was generated from.
type Snapshot struct {
	Price         float64         `json:"price"`
	ChangePercent float64         `json:"priceChangePercent"`
	Volatility    float64         `json:"volatility"`
	Volume        float64         `json:"volume24h"`
	Timestamp     time.Time       `json:"timestamp"`
	Analysis      market.Analysis `json:"analysis"`
}

// Moment is one generated clip with full provenance.
type Moment struct {
	ID          string        `json:"id"`
	Instrument  string        `json:"instrument"`
	Preset      string        `json:"dj"`
	CreatedAt   time.Time     `json:"createdAt"`
	Market      Snapshot      `json:"market"`
	Params      music.Params  `json:"params"`
	Explanation string        `json:"explanation"`
	Provider    string        `json:"provider"`
	Format      string        `json:"format"`
	ContentType string        `json:"-"`
	Audio       []byte        `json:"-"`
	Waveform    waveform.Data `json:"waveform"`
}

// New creates a moment with a fresh ID and creation time.
func New(instrument, preset string) *Moment {
	return &Moment{
		ID:         uuid.NewString(),
		Instrument: instrument,
		Preset:     preset,
		CreatedAt:  time.Now().UTC(),
	}
}

// Summary is the listing view of a moment, without audio or waveform
// payloads.
type Summary struct {
	ID            string      `json:"id"`
	Instrument    string      `json:"instrument"`
	Preset        string      `json:"dj"`
	CreatedAt     time.Time   `json:"createdAt"`
	Price         float64     `json:"price"`
	ChangePercent float64     `json:"priceChangePercent"`
	Sentiment     string      `json:"sentiment"`
	Tempo         int         `json:"tempo"`
	Scale         music.Scale `json:"scale"`
	Format        string      `json:"format"`
}

// Summarize projects the moment into its listing view.
func (m *Moment) Summarize() Summary {
	return Summary{
		ID:            m.ID,
		Instrument:    m.Instrument,
		Preset:        m.Preset,
		CreatedAt:     m.CreatedAt,
		Price:         m.Market.Price,
		ChangePercent: m.Market.ChangePercent,
		Sentiment:     m.Market.Analysis.Sentiment,
		Tempo:         m.Params.Tempo,
		Scale:         m.Params.Scale,
		Format:        m.Format,
	}
}
