package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote calls an ElevenLabs-style music generation REST API. The
// response body is the encoded audio itself (MP3), which this service
// passes through without decoding.
type Remote struct {
	apiURL          string
	apiKey          string
	promptInfluence float64
	http            *http.Client
}

// NewRemote creates a remote synthesis client.
func NewRemote(apiURL, apiKey string, timeout time.Duration, promptInfluence float64) *Remote {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Remote{
		apiURL:          apiURL,
		apiKey:          apiKey,
		promptInfluence: promptInfluence,
		http:            &http.Client{Timeout: timeout},
	}
}

// Name identifies this provider in logs and moment metadata.
func (r *Remote) Name() string { return "elevenlabs" }

// generateRequest is the music-generation request body.
type generateRequest struct {
	Text            string  `json:"text"`
	DurationSeconds int     `json:"duration_seconds"`
	PromptInfluence float64 `json:"prompt_influence"`
}

// Generate submits the prompt and returns the service's audio bytes.
func (r *Remote) Generate(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(generateRequest{
		Text:            BuildPrompt(req),
		DurationSeconds: req.Duration,
		PromptInfluence: r.promptInfluence,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", r.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", r.apiKey)

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("generation status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("generation returned no audio")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	return &Result{
		Audio:       audio,
		Format:      "mp3",
		ContentType: contentType,
		Provider:    r.Name(),
	}, nil
}

// Available probes the API with a zero-length request to check
// reachability. Any HTTP response counts as reachable; only transport
// errors do not.
func (r *Remote) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "HEAD", r.apiURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("xi-api-key", r.apiKey)

	resp, err := r.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
