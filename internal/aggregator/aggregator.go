package aggregator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
)

// SourceAdapter is a provider adapter whose Fetch never fails.
// *providers.Adapter satisfies it.
type SourceAdapter interface {
	Source() domain.Source
	Fetch(ctx context.Context, apiKey string) []domain.Article
}

// Result is the output of one aggregation cycle.
type Result struct {
	BySource map[domain.Source][]domain.Article `json:"by_source"`
	Merged   []domain.Article                   `json:"merged"`
}

// Empty reports whether the cycle produced no articles at all.
func (r Result) Empty() bool {
	return len(r.Merged) == 0
}

// Service fans out to every adapter and merges what comes back.
type Service struct {
	adapters []SourceAdapter
	log      logger.Logger
}

// NewService wires the orchestrator with its adapters.
func NewService(adapters []SourceAdapter, log logger.Logger) *Service {
	cp := make([]SourceAdapter, 0, len(adapters))
	for _, a := range adapters {
		if a != nil {
			cp = append(cp, a)
		}
	}
	return &Service{adapters: cp, log: logger.Ensure(log)}
}

// Aggregate calls every adapter concurrently and blocks until all of them have
// settled. It never returns an error: a failed provider contributes an empty
// list, and a cycle where every provider failed yields an empty Result.
func (s *Service) Aggregate(ctx context.Context, creds domain.Credentials) Result {
	start := time.Now()
	lists := make([][]domain.Article, len(s.adapters))

	var g errgroup.Group
	for i, a := range s.adapters {
		g.Go(func() error {
			src := a.Source()
			lists[i] = Tag(a.Fetch(ctx, creds.For(src)), src)
			return nil
		})
	}
	_ = g.Wait()

	bySource := make(map[domain.Source][]domain.Article, len(domain.Sources()))
	for _, src := range domain.Sources() {
		bySource[src] = []domain.Article{}
	}
	for i, a := range s.adapters {
		src := a.Source()
		bySource[src] = append(bySource[src], lists[i]...)
	}

	merged := make([]domain.Article, 0)
	for _, src := range domain.Sources() {
		merged = append(merged, bySource[src]...)
	}
	merged = SortByPublished(merged)

	counts := make(map[string]int, len(bySource))
	for src, list := range bySource {
		counts[string(src)] = len(list)
	}
	s.log.InfoObj("aggregation completed", "aggregation_meta", map[string]any{
		"by_source":  counts,
		"merged":     len(merged),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	if len(merged) == 0 {
		s.log.WarnObj("aggregation produced no articles", "aggregation_meta", map[string]any{
			"adapters": len(s.adapters),
		})
	}

	return Result{BySource: bySource, Merged: merged}
}

// Tag returns a copy of articles labelled with src.
func Tag(articles []domain.Article, src domain.Source) []domain.Article {
	out := make([]domain.Article, len(articles))
	for i, a := range articles {
		a.Source = src
		out[i] = a
	}
	return out
}
