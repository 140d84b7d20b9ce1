package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// mediastackResponse is the /news payload shape. Mediastack reports some
// failures as an error object, so it is decoded alongside the data.
type mediastackResponse struct {
	Data  []mediastackArticle `json:"data"`
	Error *mediastackError    `json:"error"`
}

type mediastackArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	Image       *string `json:"image"`
	PublishedAt *string `json:"published_at"`
}

type mediastackError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var mediastackRateLimitCodes = map[string]bool{
	"rate_limit_reached":  true,
	"usage_limit_reached": true,
}

type mediastackFetcher struct {
	client HTTPClient
}

// NewMediastackFetcher builds a fetcher for Mediastack.
func NewMediastackFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &mediastackFetcher{client: client}
}

func (f *mediastackFetcher) Type() string {
	return TypeMediastack
}

func (f *mediastackFetcher) Fetch(ctx context.Context, cfg Provider, apiKey string) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, TypeMediastack) {
		return nil, fmt.Errorf("mediastack fetcher received incompatible provider type %q", cfg.Type)
	}

	query := map[string]string{
		"access_key": apiKey,
		"languages":  cfg.Language,
		"categories": cfg.Category,
	}
	if cfg.Limit > 0 {
		query["limit"] = limitParam(cfg.Limit)
	}

	var payload mediastackResponse
	if err := fetchJSON(ctx, f.client, cfg, query, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		code := http.StatusBadGateway
		if mediastackRateLimitCodes[payload.Error.Code] {
			code = http.StatusTooManyRequests
		}
		return nil, &StatusError{
			Provider: cfg.ID,
			Code:     code,
			Snippet:  payload.Error.Code + ": " + payload.Error.Message,
		}
	}
	return normalizeMediastack(payload), nil
}

func normalizeMediastack(payload mediastackResponse) []domain.Article {
	articles := make([]domain.Article, 0, len(payload.Data))
	for _, a := range payload.Data {
		articles = append(articles, newArticle(a.Title, a.Description, a.URL, a.Image, a.PublishedAt))
	}
	return articles
}
