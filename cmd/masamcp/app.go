package main

import (
	"github.com/effective-security/masamcp/cache"
	"github.com/effective-security/masamcp/config"
	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/masamcp/services"
	"github.com/effective-security/masamcp/tools"
	"github.com/effective-security/masamcp/tools/masatools"
	"github.com/effective-security/xlog"
)

// app is the composition root: configuration, cache, API client,
// services and tools are created once and passed down
type app struct {
	cfg      *config.Config
	cache    *cache.Manager
	api      *masaapi.Masa
	services *services.Factory
	tools    []tools.IMCPTool
}

func newApp(cfg *config.Config) (*app, error) {
	client, err := masaapi.NewClient(masaapi.Config{
		BaseURL: cfg.Masa.BaseURL,
		APIKey:  cfg.Masa.APIKey,
		Timeout: cfg.Timeout(),
		Retry: masaapi.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.RetryBaseDelay(),
		},
	})
	if err != nil {
		return nil, err
	}

	cm := cache.NewManager(
		cache.WithDefaults(cfg.CacheDefaults()),
		cache.WithRegionDefaults(cfg.CacheRegions()),
	)
	api := masaapi.New(client, cm, nil)
	factory := services.NewFactory(api)

	logger.KV(xlog.INFO,
		"status", "initialized",
		"environment", cfg.Environment,
		"base_url", client.BaseURL(),
		"api_key", cfg.Masked().Masa.APIKey,
	)

	return &app{
		cfg:      cfg,
		cache:    cm,
		api:      api,
		services: factory,
		tools:    masatools.New(factory),
	}, nil
}
