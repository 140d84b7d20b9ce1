package aggregator

import (
	"slices"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePublished parses the timestamp formats the providers emit.
func ParsePublished(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type datedArticle struct {
	article domain.Article
	at      time.Time
}

// SortByPublished returns a copy of articles ordered newest first. Articles
// without a usable PublishedAt stay at their original positions; the dated
// articles are stable-sorted into the remaining positions, so equal
// timestamps keep their input order.
func SortByPublished(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	slots := make([]int, 0, len(out))
	dated := make([]datedArticle, 0, len(out))
	for i, a := range out {
		if a.PublishedAt == nil {
			continue
		}
		at, ok := ParsePublished(*a.PublishedAt)
		if !ok {
			continue
		}
		slots = append(slots, i)
		dated = append(dated, datedArticle{article: a, at: at})
	}

	slices.SortStableFunc(dated, func(a, b datedArticle) int {
		return b.at.Compare(a.at)
	})
	for k, idx := range slots {
		out[idx] = dated[k].article
	}
	return out
}
