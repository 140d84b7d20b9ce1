package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/samvad-hq/samvad-tech-digest/internal/aggregator"
	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/storage"
	"github.com/samvad-hq/samvad-tech-digest/pkg/publishers"
)

type fakeAggregator struct {
	res   aggregator.Result
	calls atomic.Int32
	creds domain.Credentials
}

func (f *fakeAggregator) Aggregate(_ context.Context, creds domain.Credentials) aggregator.Result {
	f.calls.Add(1)
	f.creds = creds
	return f.res
}

type recordingPublisher struct {
	events []publishers.Event
	fail   map[string]bool
	closed bool
}

func (r *recordingPublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	if r.fail[evt.Article.ID] {
		return 0, errors.New("sink unavailable")
	}
	r.events = append(r.events, evt)
	return 1, nil
}

func (r *recordingPublisher) Size() int { return 1 }

func (r *recordingPublisher) Close() error {
	r.closed = true
	return nil
}

func strPtr(s string) *string { return &s }

func sampleResult() aggregator.Result {
	c1 := domain.Article{ID: "c1", Title: "Go generics deep dive", URL: "https://c.example/1", PublishedAt: strPtr("2024-01-03"), Source: domain.SourceCurrents}
	c2 := domain.Article{ID: "c2", Title: "Kubernetes 1.30", URL: "https://c.example/2", PublishedAt: strPtr("2024-01-01"), Source: domain.SourceCurrents}
	m1 := domain.Article{ID: "m1", Title: "Chip shortage eases", Description: strPtr("Go-to-market delays shrink"), URL: "https://m.example/1", PublishedAt: strPtr("2024-01-02"), Source: domain.SourceMediastack}
	n1 := domain.Article{ID: "n1", Title: "AI regulation update", URL: "https://n.example/1", Source: domain.SourceNewsAPI}
	return aggregator.Result{
		BySource: map[domain.Source][]domain.Article{
			domain.SourceCurrents:   {c1, c2},
			domain.SourceMediastack: {m1},
			domain.SourceNewsAPI:    {n1},
		},
		Merged: []domain.Article{c1, m1, c2, n1},
	}
}

func emptyResult() aggregator.Result {
	return aggregator.Result{
		BySource: map[domain.Source][]domain.Article{
			domain.SourceCurrents:   {},
			domain.SourceMediastack: {},
			domain.SourceNewsAPI:    {},
		},
		Merged: []domain.Article{},
	}
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewStore("bbolt", filepath.Join(t.TempDir(), "digest.db"), storage.Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
