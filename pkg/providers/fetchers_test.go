package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/pkg/httpclient"
)

type mockHTTPClient struct {
	t         *testing.T
	expectURL string
	expectQ   map[string]string
	status    int
	body      string
	err       error
	gotQuery  map[string]string
}

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }
func (r mockResponse) Status() string  { return "" }

func (m *mockHTTPClient) Get(_ context.Context, url string, query map[string]string, _ map[string]string) (httpclient.Response, error) {
	m.gotQuery = query
	if m.expectURL != "" && url != m.expectURL {
		m.t.Fatalf("expected url %q, got %q", m.expectURL, url)
	}
	for key, want := range m.expectQ {
		if got := query[key]; got != want {
			m.t.Fatalf("expected query %s=%q, got %q", key, want, got)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

func defaultProvider(t *testing.T, typ string) Provider {
	t.Helper()
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	p, ok := reg.ByID(typ)
	if !ok {
		t.Fatalf("missing default provider %q", typ)
	}
	return p
}

func TestCurrentsFetcherMapsFields(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "https://api.currentsapi.services/v1/latest-news",
		expectQ: map[string]string{
			"apiKey":   "secret",
			"language": "en",
			"category": "technology",
		},
		body: `{"status":"ok","news":[
			{"title":"Quantum Leap","description":"Qubits &amp; more","url":"https://c.example/1","image":"https://img/1.png","published":"2024-01-02 10:00:00 +0000"},
			{"title":"No Image","description":null,"url":"https://c.example/2","image":""}
		]}`,
	}

	articles, err := NewCurrentsFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeCurrents), "secret")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, capped := client.gotQuery["page_size"]; capped {
		t.Fatalf("currents should not send a page size by default")
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Quantum Leap" || first.ImageURL != "https://img/1.png" {
		t.Fatalf("unexpected first article %+v", first)
	}
	if first.DescriptionText() != "Qubits & more" {
		t.Fatalf("expected entity-decoded description, got %q", first.DescriptionText())
	}
	if first.PublishedAt == nil || *first.PublishedAt != "2024-01-02 10:00:00 +0000" {
		t.Fatalf("unexpected published %v", first.PublishedAt)
	}
	if first.ID != hashURL("https://c.example/1") {
		t.Fatalf("expected id derived from url")
	}
	if first.Source != "" {
		t.Fatalf("fetchers must not tag source, got %q", first.Source)
	}

	second := articles[1]
	if second.Description != nil {
		t.Fatalf("expected nil description preserved, got %q", *second.Description)
	}
	if second.ImageURL != domain.PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", second.ImageURL)
	}
	if second.PublishedAt != nil {
		t.Fatalf("expected nil published timestamp")
	}
}

func TestMediastackFetcherSendsLimitAndMapsPublishedAt(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "http://api.mediastack.com/v1/news",
		expectQ: map[string]string{
			"access_key": "ms-key",
			"languages":  "en",
			"categories": "technology",
			"limit":      "10",
		},
		body: `{"pagination":{"limit":10},"data":[
			{"title":"Chips","description":"<p>New <b>silicon</b></p>","url":"https://m.example/1","image":null,"published_at":"2024-01-01T08:00:00+00:00"}
		]}`,
	}

	articles, err := NewMediastackFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeMediastack), "ms-key")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.ImageURL != domain.PlaceholderImage {
		t.Fatalf("expected placeholder for null image, got %q", a.ImageURL)
	}
	if a.DescriptionText() != "New silicon" {
		t.Fatalf("expected markup flattened, got %q", a.DescriptionText())
	}
	if a.PublishedAt == nil || *a.PublishedAt != "2024-01-01T08:00:00+00:00" {
		t.Fatalf("unexpected published_at %v", a.PublishedAt)
	}
}

func TestMediastackErrorObjectRateLimit(t *testing.T) {
	client := &mockHTTPClient{
		t:    t,
		body: `{"error":{"code":"rate_limit_reached","message":"Too many requests"}}`,
	}

	_, err := NewMediastackFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeMediastack), "k")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestNewsAPIFetcherHasNoTimestamp(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "https://newsapi.org/v2/top-headlines",
		expectQ: map[string]string{
			"apiKey":   "n-key",
			"category": "technology",
			"language": "en",
			"pageSize": "10",
		},
		body: `{"status":"ok","totalResults":1,"articles":[
			{"title":"Headline","description":"desc","url":"https://n.example/1","urlToImage":"https://img/n.png","publishedAt":"2024-01-03T00:00:00Z"}
		]}`,
	}

	articles, err := NewNewsAPIFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeNewsAPI), "n-key")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].PublishedAt != nil {
		t.Fatalf("newsapi articles must not carry publishedAt, got %q", *articles[0].PublishedAt)
	}
	if articles[0].ImageURL != "https://img/n.png" {
		t.Fatalf("unexpected image %q", articles[0].ImageURL)
	}
}

func TestFetchJSONNon2xx(t *testing.T) {
	client := &mockHTTPClient{t: t, status: 429, body: `{"status":"error"}`}

	_, err := NewNewsAPIFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeNewsAPI), "k")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 429 {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected 429 to match ErrRateLimited")
	}

	client = &mockHTTPClient{t: t, status: 500, body: ""}
	_, err = NewCurrentsFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeCurrents), "k")
	if err == nil || errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected non rate-limit error, got %v", err)
	}
}

func TestFetcherRejectsIncompatibleProvider(t *testing.T) {
	_, err := NewCurrentsFetcher(&mockHTTPClient{t: t}).Fetch(context.Background(), defaultProvider(t, TypeNewsAPI), "k")
	if err == nil {
		t.Fatalf("expected error for mismatched provider type")
	}
}

func TestDefaultFetcherRegistryResolvesAllTypes(t *testing.T) {
	reg := DefaultFetcherRegistry(&mockHTTPClient{t: t})
	for _, typ := range []string{TypeCurrents, TypeMediastack, TypeNewsAPI} {
		f, err := reg.FetcherFor(Provider{ID: typ, Type: typ})
		if err != nil {
			t.Fatalf("FetcherFor(%s): %v", typ, err)
		}
		if f.Type() != typ {
			t.Fatalf("expected fetcher type %s, got %s", typ, f.Type())
		}
	}
	if _, err := reg.FetcherFor(Provider{ID: "x", Type: "rss"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestArticlesWithoutURLGetDistinctIDs(t *testing.T) {
	client := &mockHTTPClient{
		t: t,
		body: `{"status":"ok","articles":[
			{"title":"First headline","url":""},
			{"title":"Second headline"},
			{"title":"Linked","url":" https://n.example/1 "}
		]}`,
	}

	articles, err := NewNewsAPIFetcher(client).Fetch(context.Background(), defaultProvider(t, TypeNewsAPI), "n-key")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].ID == articles[1].ID {
		t.Fatalf("articles without a URL must not share an id: %s", articles[0].ID)
	}
	if articles[0].ID == hashURL("") {
		t.Fatalf("empty URL must not be used as the id key")
	}
	if articles[2].ID != hashURL("https://n.example/1") {
		t.Fatalf("linked article should be keyed by its trimmed URL, got %s", articles[2].ID)
	}
}
