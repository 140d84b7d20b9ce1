package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/config"
	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
	"github.com/samvad-hq/samvad-tech-digest/internal/storage"
	"github.com/samvad-hq/samvad-tech-digest/pkg/publishers"
)

// EventPublisher delivers one event to every downstream sink.
// *publishers.Fanout satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
	Close() error
}

// Digest is the long-running runtime: it aggregates on a fixed interval and
// publishes merged articles that were not published before.
type Digest struct {
	agg      Aggregator
	fanout   EventPublisher
	store    storage.Store
	creds    domain.Credentials
	interval time.Duration
	log      logger.Logger
}

// NewDigest builds the digest runtime from config files.
func NewDigest(ctx context.Context, cfg *config.Config, log logger.Logger) (*Digest, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	agg, err := buildAggregator(cfg, log)
	if err != nil {
		return nil, err
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}

	return newDigest(agg, publishers.NewFanout(pubClients), store, cfg.Credentials(), cfg.RefreshInterval, log), nil
}

func newDigest(agg Aggregator, fanout EventPublisher, store storage.Store, creds domain.Credentials, interval time.Duration, log logger.Logger) *Digest {
	return &Digest{
		agg:      agg,
		fanout:   fanout,
		store:    store,
		creds:    creds,
		interval: interval,
		log:      logger.Ensure(log),
	}
}

// Run performs one cycle immediately and then one per interval until the
// context is cancelled.
func (d *Digest) Run(ctx context.Context) error {
	if d == nil || d.agg == nil {
		return fmt.Errorf("digest is not initialized")
	}
	defer d.close()

	d.log.InfoObj("digest loop starting", "digest_state", map[string]any{
		"publishers_count": d.fanout.Size(),
		"refresh_interval": d.interval.String(),
	})

	d.RunOnce(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoObj("digest loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			d.RunOnce(ctx)
		}
	}
}

// CycleStats summarizes one digest cycle.
type CycleStats struct {
	Merged    int `json:"merged"`
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// RunOnce aggregates once and publishes every unseen merged article. Provider
// and publisher failures are logged; nothing is returned as an error.
func (d *Digest) RunOnce(ctx context.Context) CycleStats {
	start := time.Now()
	res := d.agg.Aggregate(ctx, d.creds)

	stats := CycleStats{Merged: len(res.Merged)}
	if res.Empty() {
		d.log.WarnObj("no articles aggregated; nothing to publish", "digest_cycle", stats)
		return stats
	}

	for i, a := range res.Merged {
		if ctx.Err() != nil {
			break
		}
		seen, err := d.store.SeenArticle(a.ID)
		if err != nil {
			d.log.WarnObj("published lookup failed", "storage_error", map[string]any{
				"article_id": a.ID,
				"error":      err.Error(),
			})
		}
		if seen {
			stats.Skipped++
			continue
		}

		delivered, err := d.fanout.Publish(ctx, publishers.NewEvent(a, i))
		if err != nil {
			d.log.ErrorObj("publish failed", "publish_error", map[string]any{
				"article_id": a.ID,
				"source":     a.Source,
				"delivered":  delivered,
				"error":      err.Error(),
			})
		}
		if delivered == 0 {
			stats.Failed++
			continue
		}
		stats.Published++
		if err := d.store.MarkArticle(a.ID); err != nil {
			d.log.WarnObj("mark published failed", "storage_error", map[string]any{
				"article_id": a.ID,
				"error":      err.Error(),
			})
		}
	}

	d.log.InfoObj("digest cycle completed", "digest_cycle", map[string]any{
		"merged":     stats.Merged,
		"published":  stats.Published,
		"skipped":    stats.Skipped,
		"failed":     stats.Failed,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return stats
}

func (d *Digest) close() {
	if err := d.fanout.Close(); err != nil {
		d.log.ErrorObj("publisher close failed", "error", err)
	}
	closeStore(d.store, d.log)
}
