package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/tendercraft/tender-cli/internal/analyze"
	"github.com/tendercraft/tender-cli/internal/catalog"
	"github.com/tendercraft/tender-cli/internal/finance"
	"github.com/tendercraft/tender-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "tender.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initCatalog() (*catalog.Catalog, error) {
	return catalog.Load(cfg.Catalog.OverlayPath)
}

func initAnalyzer() (*analyze.Analyzer, error) {
	cat, err := initCatalog()
	if err != nil {
		return nil, err
	}
	return analyze.New(cat, analyzerOptions()), nil
}

func analyzerOptions() analyze.Options {
	return analyze.Options{
		Workers:          cfg.Analyze.Workers,
		CrewSize:         cfg.Analyze.CrewSize,
		CriticalPathSize: cfg.Analyze.CriticalPathSize,
		Rates: finance.Rates{
			Overhead:    cfg.Finance.OverheadRate,
			Management:  cfg.Finance.ManagementRate,
			Contingency: cfg.Finance.ContingencyRate,
			Tax:         cfg.Finance.TaxRate,
		},
	}
}
