package publishers

import (
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

// Event is the payload delivered downstream for one merged article.
type Event struct {
	Source      domain.Source  `json:"source"`
	Position    int            `json:"position"`
	Article     domain.Article `json:"article"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewEvent wraps an article with its position in the merged digest.
func NewEvent(article domain.Article, position int) Event {
	return Event{
		Source:      article.Source,
		Position:    position,
		Article:     article,
		CollectedAt: time.Now().UTC(),
	}
}
