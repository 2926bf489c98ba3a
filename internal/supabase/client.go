package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"

	"modforge-backend/internal/config"
)

// Client wraps the Supabase API client used for realtime channels. Workspace
// rows go through DatabaseClient directly; this client never issues table
// queries.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
