package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// currentsResponse is the latest-news payload shape.
type currentsResponse struct {
	Status string            `json:"status"`
	News   []currentsArticle `json:"news"`
}

type currentsArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	Image       *string `json:"image"`
	Published   *string `json:"published"`
}

// currentsFetcher implements Fetcher for the Currents latest-news endpoint.
type currentsFetcher struct {
	client HTTPClient
}

// NewCurrentsFetcher builds a fetcher for Currents.
func NewCurrentsFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &currentsFetcher{client: client}
}

func (f *currentsFetcher) Type() string {
	return TypeCurrents
}

func (f *currentsFetcher) Fetch(ctx context.Context, cfg Provider, apiKey string) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, TypeCurrents) {
		return nil, fmt.Errorf("currents fetcher received incompatible provider type %q", cfg.Type)
	}

	query := map[string]string{
		"apiKey":   apiKey,
		"language": cfg.Language,
		"category": cfg.Category,
	}
	if cfg.Limit > 0 {
		query["page_size"] = limitParam(cfg.Limit)
	}

	var payload currentsResponse
	if err := fetchJSON(ctx, f.client, cfg, query, &payload); err != nil {
		return nil, err
	}
	return normalizeCurrents(payload), nil
}

func normalizeCurrents(payload currentsResponse) []domain.Article {
	articles := make([]domain.Article, 0, len(payload.News))
	for _, a := range payload.News {
		articles = append(articles, newArticle(a.Title, a.Description, a.URL, a.Image, a.Published))
	}
	return articles
}
