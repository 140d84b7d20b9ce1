package filter

import (
	"strings"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// Filter returns the articles whose title or description contains term,
// ignoring case. A blank term returns articles itself. The input is never
// modified and matches keep their relative order.
func Filter(articles []domain.Article, term string) []domain.Article {
	if strings.TrimSpace(term) == "" {
		return articles
	}

	needle := strings.ToLower(term)
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if Matches(a, needle) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a lower-cased needle occurs in the article's title
// or, when present, its description.
func Matches(a domain.Article, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) {
		return true
	}
	return a.Description != nil && strings.Contains(strings.ToLower(*a.Description), needle)
}
