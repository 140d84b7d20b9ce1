package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// newsAPIResponse is the top-headlines payload shape.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

// newsAPIArticle maps only the fields the digest reads; publishedAt is not mapped.
type newsAPIArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
}

type newsAPIFetcher struct {
	client HTTPClient
}

// NewNewsAPIFetcher builds a fetcher for NewsAPI top headlines.
func NewNewsAPIFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &newsAPIFetcher{client: client}
}

func (f *newsAPIFetcher) Type() string {
	return TypeNewsAPI
}

func (f *newsAPIFetcher) Fetch(ctx context.Context, cfg Provider, apiKey string) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, TypeNewsAPI) {
		return nil, fmt.Errorf("newsapi fetcher received incompatible provider type %q", cfg.Type)
	}

	query := map[string]string{
		"apiKey":   apiKey,
		"category": cfg.Category,
		"language": cfg.Language,
	}
	if cfg.Limit > 0 {
		query["pageSize"] = limitParam(cfg.Limit)
	}

	var payload newsAPIResponse
	if err := fetchJSON(ctx, f.client, cfg, query, &payload); err != nil {
		return nil, err
	}
	return normalizeNewsAPI(payload), nil
}

func normalizeNewsAPI(payload newsAPIResponse) []domain.Article {
	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, newArticle(a.Title, a.Description, a.URL, a.URLToImage, nil))
	}
	return articles
}
