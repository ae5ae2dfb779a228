// Package station runs the generation pipeline: fetch market history,
// analyze it, map it to musical parameters, synthesize a clip, extract
// its waveform, and store the finished moment.
package station

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sonifex/marketwave/internal/market"
	"github.com/sonifex/marketwave/internal/moment"
	"github.com/sonifex/marketwave/internal/music"
	"github.com/sonifex/marketwave/internal/synthesis"
	"github.com/sonifex/marketwave/internal/wav"
	"github.com/sonifex/marketwave/internal/waveform"
)

// Config holds station parameters.
type Config struct {
	Workers     int // concurrent generation workers
	Duration    int // clip length, seconds
	HistoryDays int // market lookback window
	SampleRate  int
}

// Status is the current state of the station.
type Status struct {
	Workers        int    `json:"workers"`
	Queued         int    `json:"queued"`
	Generated      int    `json:"generated"`
	Failed         int    `json:"failed"`
	LastInstrument string `json:"lastInstrument,omitempty"`
	LastError      string `json:"lastError,omitempty"`
	StoredMoments  int    `json:"storedMoments"`
}

// Job is one queued generation request. Days overrides the configured
// history window when positive.
type Job struct {
	Instrument string
	Preset     string
	Days       int
}

// Station coordinates the moment generation pipeline.
type Station struct {
	markets   *market.Client
	provider  synthesis.Provider
	store     *moment.Store
	extractor *waveform.Extractor
	cfg       Config

	mu             sync.RWMutex
	generated      int
	failed         int
	lastInstrument string
	lastError      string

	jobs chan Job
}

// New creates a station.
func New(markets *market.Client, provider synthesis.Provider, store *moment.Store, extractor *waveform.Extractor, cfg Config) *Station {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 8
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 7
	}
	return &Station{
		markets:   markets,
		provider:  provider,
		store:     store,
		extractor: extractor,
		cfg:       cfg,
		jobs:      make(chan Job, cfg.Workers*4),
	}
}

// Run starts the worker pool. Blocks until ctx is cancelled.
func (s *Station) Run(ctx context.Context) {
	log.Printf("Station started with %d workers", s.cfg.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-s.jobs:
					if _, err := s.Generate(ctx, job); err != nil {
						log.Printf("Generation failed for %s: %v", job.Instrument, err)
					}
				}
			}
		}()
	}
	wg.Wait()
}

// Submit queues a generation job. Returns an error when the queue is
// full rather than blocking the caller.
func (s *Station) Submit(job Job) error {
	if !market.IsValidInstrument(job.Instrument) {
		return fmt.Errorf("unknown instrument %q", job.Instrument)
	}
	if job.Preset != "" && !market.IsValidPreset(job.Preset) {
		return fmt.Errorf("unknown preset %q", job.Preset)
	}
	select {
	case s.jobs <- job:
		return nil
	default:
		return fmt.Errorf("generation queue full")
	}
}

// Status returns the current station state.
func (s *Station) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Workers:        s.cfg.Workers,
		Queued:         len(s.jobs),
		Generated:      s.generated,
		Failed:         s.failed,
		LastInstrument: s.lastInstrument,
		LastError:      s.lastError,
		StoredMoments:  s.store.Len(),
	}
}

// Generate runs the full pipeline for one instrument and stores the
// resulting moment. Safe to call from multiple goroutines.
func (s *Station) Generate(ctx context.Context, job Job) (*moment.Moment, error) {
	if !market.IsValidInstrument(job.Instrument) {
		return nil, fmt.Errorf("unknown instrument %q", job.Instrument)
	}
	if job.Preset == "" {
		job.Preset = market.DefaultPreset
	}
	if !market.IsValidPreset(job.Preset) {
		return nil, fmt.Errorf("unknown preset %q", job.Preset)
	}
	if job.Days <= 0 {
		job.Days = s.cfg.HistoryDays
	}

	m, err := s.generate(ctx, job)
	s.mu.Lock()
	s.lastInstrument = job.Instrument
	if err != nil {
		s.failed++
		s.lastError = err.Error()
	} else {
		s.generated++
		s.lastError = ""
	}
	s.mu.Unlock()
	return m, err
}

func (s *Station) generate(ctx context.Context, job Job) (*moment.Moment, error) {
	instrument, preset := job.Instrument, job.Preset
	history, err := s.markets.History(ctx, instrument, job.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	analysis, err := market.Analyze(history)
	if err != nil {
		return nil, fmt.Errorf("analyze history: %w", err)
	}

	params := market.MapParams(history, analysis, preset)
	seed := seedFrom(history)

	result, err := s.provider.Generate(ctx, synthesis.Request{
		Params:       params,
		Instrument:   instrument,
		Preset:       preset,
		Duration:     s.cfg.Duration,
		Seed:         seed,
		PriceSamples: recentPrices(history, 8),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	m := moment.New(instrument, preset)
	m.Market = moment.Snapshot{
		Price:         history.CurrentPrice,
		ChangePercent: history.TotalChangePercent,
		Volatility:    history.Volatility,
		Volume:        history.CurrentVolume,
		Timestamp:     time.Now().UTC(),
		Analysis:      analysis,
	}
	m.Params = params
	m.Explanation = market.Explanation(history, analysis, params, preset)
	m.Provider = result.Provider
	m.Format = result.Format
	m.ContentType = result.ContentType
	m.Audio = result.Audio
	m.Waveform = s.extractWaveform(result, params, seed)

	s.store.Put(m)
	log.Printf("Moment ready: %s [%s, %s] via %s", m.ID, instrument, preset, result.Provider)
	return m, nil
}

// extractWaveform decodes the audio for exact peaks when possible and
// synthesizes an approximation otherwise.
func (s *Station) extractWaveform(result *synthesis.Result, params music.Params, seed uint64) waveform.Data {
	if result.Inspectable() {
		if pcm, info, err := wav.Decode(result.Audio); err == nil {
			return s.extractor.FromPCM(pcm, info.SampleRate, info.Channels)
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	return s.extractor.Approximate(params, float64(s.cfg.Duration), s.cfg.SampleRate, rng)
}

// seedFrom derives a deterministic seed from the market data, so the
// same history always renders the same clip.
func seedFrom(h market.History) uint64 {
	seed := math.Float64bits(h.CurrentPrice)
	if n := len(h.Points); n > 0 {
		seed ^= uint64(h.Points[n-1].Timestamp)
	}
	return seed
}

func recentPrices(h market.History, n int) []float64 {
	if len(h.Points) == 0 {
		return nil
	}
	start := len(h.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, 0, n)
	for _, p := range h.Points[start:] {
		out = append(out, p.Price)
	}
	return out
}
