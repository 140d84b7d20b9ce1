package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/samvad-tech-digest/internal/aggregator"
	"github.com/samvad-hq/samvad-tech-digest/internal/config"
	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
	"github.com/samvad-hq/samvad-tech-digest/internal/storage"
	"github.com/samvad-hq/samvad-tech-digest/pkg/httpclient"
	"github.com/samvad-hq/samvad-tech-digest/pkg/providers"
)

// Aggregator runs one aggregation cycle. *aggregator.Service satisfies it.
type Aggregator interface {
	Aggregate(ctx context.Context, creds domain.Credentials) aggregator.Result
}

// buildAggregator loads the provider registry and wraps every provider in a
// timeout-bounded adapter.
func buildAggregator(cfg *config.Config, log logger.Logger) (*aggregator.Service, error) {
	providerReg, err := providers.LoadRegistry(cfg.ProvidersFile)
	if err != nil {
		return nil, fmt.Errorf("load providers registry: %w", err)
	}
	providerList := providerReg.All()
	providerIDs := make([]string, 0, len(providerList))
	for _, p := range providerList {
		providerIDs = append(providerIDs, p.ID)
	}
	log.InfoObj("providers registry loaded", "providers_meta", map[string]any{
		"count": len(providerIDs),
		"ids":   providerIDs,
	})

	fetchers := providers.DefaultFetcherRegistry(httpclient.NewRestyClient(cfg.RequestTimeout))
	adapters, err := providers.BuildAdapters(fetchers, providerList, log)
	if err != nil {
		return nil, fmt.Errorf("build provider adapters: %w", err)
	}

	sources := make([]aggregator.SourceAdapter, 0, len(adapters))
	for _, a := range adapters {
		sources = append(sources, a.WithTimeout(cfg.RequestTimeout))
	}
	return aggregator.NewService(sources, log), nil
}

func openStore(cfg *config.Config, log logger.Logger) (storage.Store, error) {
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ArticleTTL:      cfg.StorageTTL,
		SessionTTL:      cfg.SessionTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"article_ttl_seconds":      int(cfg.StorageTTL.Seconds()),
		"session_ttl_seconds":      int(cfg.SessionTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})
	return store, nil
}

func closeStore(store storage.Store, log logger.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.ErrorObj("storage close failed", "error", err)
	}
}
