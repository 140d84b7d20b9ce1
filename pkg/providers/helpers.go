package providers

import (
	"context"
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

func hashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}

// articleID keys an article by its URL, or by its title when the provider
// sent no URL.
func articleID(url, title string) string {
	if u := strings.TrimSpace(url); u != "" {
		return hashURL(u)
	}
	return hashURL("title:" + strings.TrimSpace(title))
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// fetchJSON issues the single GET for a provider and decodes a 2xx body into out.
func fetchJSON(ctx context.Context, client HTTPClient, cfg Provider, query map[string]string, out any) error {
	resp, err := client.Get(ctx, cfg.SourceURL, query, Headers(cfg))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", cfg.ID, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{Provider: cfg.ID, Code: code, Snippet: responseSnippet(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", cfg.ID, err)
	}
	return nil
}

// imageOrPlaceholder substitutes the placeholder for a null, absent or empty image.
func imageOrPlaceholder(image *string) string {
	if image == nil || *image == "" {
		return domain.PlaceholderImage
	}
	return *image
}

// optionalText keeps nil as nil and flattens markup in present values.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := plainText(*s)
	return &v
}

// optionalTimestamp treats blank timestamps as absent.
func optionalTimestamp(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// plainText strips HTML tags and decodes entities some providers embed in
// titles and descriptions. Plain strings are returned untouched.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func newArticle(title string, description *string, url string, image *string, publishedAt *string) domain.Article {
	return domain.Article{
		ID:          articleID(url, title),
		Title:       plainText(title),
		Description: optionalText(description),
		URL:         url,
		ImageURL:    imageOrPlaceholder(image),
		PublishedAt: optionalTimestamp(publishedAt),
	}
}

func limitParam(n int) string {
	return strconv.Itoa(n)
}
