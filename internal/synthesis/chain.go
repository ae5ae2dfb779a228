package synthesis

import (
	"context"
	"log"
)

// Chain tries the remote provider first and falls back to the local
// engine when the remote is unconfigured or fails. The local engine
// only fails on invalid parameters, so a chain with a working local
// provider effectively always produces audio.
type Chain struct {
	remote *Remote
	local  *Local
}

// NewChain builds the fallback chain. remote may be nil when no API is
// configured.
func NewChain(remote *Remote, local *Local) *Chain {
	return &Chain{remote: remote, local: local}
}

// Name reports which provider would be tried first.
func (c *Chain) Name() string {
	if c.remote != nil {
		return c.remote.Name()
	}
	return c.local.Name()
}

// Generate produces audio for the request, preferring the remote API.
func (c *Chain) Generate(ctx context.Context, req Request) (*Result, error) {
	if c.remote != nil {
		result, err := c.remote.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		log.Printf("remote synthesis failed: %v, falling back to local engine", err)
	}
	return c.local.Generate(ctx, req)
}
