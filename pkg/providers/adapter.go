package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// Adapter isolates one provider's failures. Fetch never returns an error:
// transport failures, non-2xx responses and undecodable payloads are logged
// and turned into an empty list.
type Adapter struct {
	cfg     Provider
	fetcher Fetcher
	log     Logger
	timeout time.Duration
}

// NewAdapter wraps fetcher for the provider described by cfg.
func NewAdapter(cfg Provider, fetcher Fetcher, log Logger) *Adapter {
	return &Adapter{cfg: cfg, fetcher: fetcher, log: ensureLogger(log)}
}

// WithTimeout bounds each Fetch call; an expired deadline counts as a failure.
func (a *Adapter) WithTimeout(d time.Duration) *Adapter {
	a.timeout = d
	return a
}

// Source returns the label attached to this adapter's articles.
func (a *Adapter) Source() domain.Source {
	return a.cfg.Source()
}

// Provider returns the adapter's config.
func (a *Adapter) Provider() Provider {
	return a.cfg
}

// Fetch performs one request with apiKey and returns the normalized articles.
func (a *Adapter) Fetch(ctx context.Context, apiKey string) (articles []domain.Article) {
	if a == nil || a.fetcher == nil {
		return []domain.Article{}
	}
	defer func() {
		if r := recover(); r != nil {
			a.logFailure(fmt.Errorf("fetcher panic: %v", r))
			articles = []domain.Article{}
		}
	}()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	articles, err := a.fetcher.Fetch(ctx, a.cfg, apiKey)
	if err != nil {
		a.logFailure(err)
		return []domain.Article{}
	}
	if articles == nil {
		articles = []domain.Article{}
	}

	a.log.DebugObj("provider fetch completed", "provider_result", map[string]any{
		"provider_id": a.cfg.ID,
		"articles":    len(articles),
	})
	return articles
}

func (a *Adapter) logFailure(err error) {
	fields := map[string]any{
		"provider_id": a.cfg.ID,
		"error":       err.Error(),
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		fields["status"] = statusErr.Code
	}

	if errors.Is(err, ErrRateLimited) {
		a.log.WarnObj("provider rate limit reached; returning empty fallback", "provider_error", fields)
		return
	}
	a.log.ErrorObj("provider fetch failed", "provider_error", fields)
}
