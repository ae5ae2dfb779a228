package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sonifex/marketwave/internal/config"
	"github.com/sonifex/marketwave/internal/market"
	"github.com/sonifex/marketwave/internal/moment"
	"github.com/sonifex/marketwave/internal/station"
	"github.com/sonifex/marketwave/internal/synth"
	"github.com/sonifex/marketwave/internal/synthesis"
	"github.com/sonifex/marketwave/internal/waveform"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Println("marketwave starting up...")

	// Market data client
	markets := market.NewClient(cfg.MarketAPIURL, cfg.MarketAPIKey, cfg.MarketTimeout)

	// Synthesis: remote API when configured, local engine as fallback
	engine := synth.NewEngine(cfg.SampleRate, cfg.LoopBlend)
	local := synthesis.NewLocal(engine)
	var remote *synthesis.Remote
	if cfg.SynthAPIURL != "" {
		remote = synthesis.NewRemote(cfg.SynthAPIURL, cfg.SynthAPIKey, cfg.SynthTimeout, cfg.PromptInfluence)
		probeCtx, probeCancel := context.WithTimeout(ctx, 10*time.Second)
		if remote.Available(probeCtx) {
			log.Printf("Remote synthesis connected: %s", cfg.SynthAPIURL)
		} else {
			log.Println("Remote synthesis not reachable, will retry per request")
		}
		probeCancel()
	} else {
		log.Println("Remote synthesis not configured (set ELEVENLABS_API_URL to enable), using local engine")
	}
	provider := synthesis.NewChain(remote, local)

	store := moment.NewStore(cfg.MaxMoments)
	extractor := waveform.NewExtractor(cfg.PeakResolution)

	st := station.New(markets, provider, store, extractor, station.Config{
		Workers:     cfg.Workers,
		Duration:    int(cfg.Duration.Seconds()),
		HistoryDays: cfg.HistoryDays,
		SampleRate:  cfg.SampleRate,
	})
	go st.Run(ctx)

	// HTTP routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":           "ok",
			"version":          version,
			"provider":         provider.Name(),
			"remote_synthesis": remote != nil,
		})
	})

	mux.HandleFunc("GET /api/status", func(w http.ResponseWriter, r *http.Request) {
		status := st.Status()
		writeJSON(w, map[string]any{
			"station":     status,
			"provider":    provider.Name(),
			"instruments": market.Instruments(),
			"djs":         market.PresetNames(),
			"config": map[string]any{
				"duration":        cfg.Duration.Seconds(),
				"sample_rate":     cfg.SampleRate,
				"peak_resolution": cfg.PeakResolution,
				"history_days":    cfg.HistoryDays,
			},
		})
	})

	mux.HandleFunc("POST /api/moments", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Instrument string `json:"instrument"`
			DJ         string `json:"dj"`
			Days       int    `json:"days"`
			Async      bool   `json:"async"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Instrument == "" {
			http.Error(w, "instrument required", http.StatusBadRequest)
			return
		}
		if !market.IsValidInstrument(req.Instrument) {
			http.Error(w, "unknown instrument", http.StatusBadRequest)
			return
		}
		if req.DJ != "" && !market.IsValidPreset(req.DJ) {
			http.Error(w, "unknown dj", http.StatusBadRequest)
			return
		}

		job := station.Job{Instrument: req.Instrument, Preset: req.DJ, Days: req.Days}
		if req.Async {
			if err := st.Submit(job); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{"ok": true, "queued": true})
			return
		}

		m, err := st.Generate(r.Context(), job)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m)
	})

	mux.HandleFunc("GET /api/moments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"moments": store.List()})
	})

	mux.HandleFunc("GET /api/moments/{id}", func(w http.ResponseWriter, r *http.Request) {
		m, err := store.Get(r.PathValue("id"))
		if err != nil {
			http.Error(w, "moment not found", http.StatusNotFound)
			return
		}
		writeJSON(w, m)
	})

	mux.HandleFunc("GET /api/moments/{id}/audio", func(w http.ResponseWriter, r *http.Request) {
		m, err := store.Get(r.PathValue("id"))
		if err != nil {
			http.Error(w, "moment not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", m.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(m.Audio)))
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.%s"`, m.ID, m.Format))
		w.Write(m.Audio)
	})

	mux.HandleFunc("GET /api/moments/{id}/waveform", func(w http.ResponseWriter, r *http.Request) {
		m, err := store.Get(r.PathValue("id"))
		if err != nil {
			http.Error(w, "moment not found", http.StatusNotFound)
			return
		}
		writeJSON(w, m.Waveform)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("marketwave live on %s", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
