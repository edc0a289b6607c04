package commands

import (
	"fmt"

	"github.com/gemstrategy/backend/internal/pricecache"
	"github.com/gemstrategy/backend/internal/quote"
	"github.com/gemstrategy/backend/internal/strategy"
	"github.com/gemstrategy/backend/internal/universe"
	"github.com/gemstrategy/backend/pkg/config"
	"github.com/gemstrategy/backend/pkg/httputil"
	"github.com/gemstrategy/backend/pkg/logger"
)

// pipeline bundles the wired core components shared by the serve and
// evaluate commands.
type pipeline struct {
	cfg      *config.Config
	logger   *logger.Logger
	universe universe.Universe
	cache    *pricecache.Cache
	engine   *strategy.Engine
}

// buildPipeline loads config and wires quote client, cache and engine.
func buildPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	u := universe.Default()
	if cfg.Strategy.UniverseFile != "" {
		u, err = universe.Load(cfg.Strategy.UniverseFile)
		if err != nil {
			return nil, fmt.Errorf("load universe: %w", err)
		}
	}

	httpClient := httputil.New(cfg, log)
	quoteClient := quote.NewClient(httpClient, log, cfg.Quote.BaseURL)
	cache := pricecache.New(quoteClient, cfg.Cache.TTL, log)
	engine := strategy.New(cache, u, cfg.Strategy.LookbackMonths, log)

	return &pipeline{
		cfg:      cfg,
		logger:   log,
		universe: u,
		cache:    cache,
		engine:   engine,
	}, nil
}
