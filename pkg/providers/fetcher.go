package providers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-tech-digest/pkg/httpclient"
)

// fetcherRegistry implements FetcherRegistry keyed by provider type.
type fetcherRegistry struct {
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry from fetcher implementations keyed by their Type.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range fetchers {
		reg.register(f)
	}
	return reg
}

func (r *fetcherRegistry) register(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.Type()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByType[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given provider based on its type.
func (r *fetcherRegistry) FetcherFor(cfg Provider) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	typeKey := strings.ToLower(strings.TrimSpace(cfg.Type))
	if f, ok := r.fetchersByType[typeKey]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for provider %q (type %q)", cfg.ID, cfg.Type)
}

const defaultTimeout = 15 * time.Second

// DefaultHTTPClient returns the resty-backed client used by provider fetchers.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(defaultTimeout) }

// DefaultFetcherRegistry wires up the Currents, Mediastack and NewsAPI fetchers.
func DefaultFetcherRegistry(client HTTPClient) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return NewFetcherRegistry(
		NewCurrentsFetcher(client),
		NewMediastackFetcher(client),
		NewNewsAPIFetcher(client),
	)
}

// BuildAdapters resolves a fetcher for every configured provider and wraps it
// in an Adapter.
func BuildAdapters(reg FetcherRegistry, cfgs []Provider, log Logger) ([]*Adapter, error) {
	adapters := make([]*Adapter, 0, len(cfgs))
	for _, cfg := range cfgs {
		f, err := reg.FetcherFor(cfg)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, NewAdapter(cfg, f, log))
	}
	return adapters, nil
}
