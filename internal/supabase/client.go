// Package supabase holds the service's persistence and media infrastructure:
// the PostgreSQL client, Supabase Storage for media binaries, and the
// Realtime event publisher.
package supabase

import (
	"github.com/supabase-community/supabase-go"

	"shootflow-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
