package domain

import "strings"

// Domain contains core models shared by providers, the aggregator and publishers.

// Source names the provider an article came from.
type Source string

const (
	SourceCurrents   Source = "Currents"
	SourceMediastack Source = "Mediastack"
	SourceNewsAPI    Source = "NewsAPI"
)

// Sources lists every known source in display and merge order.
func Sources() []Source {
	return []Source{SourceCurrents, SourceMediastack, SourceNewsAPI}
}

// ParseSource resolves a source name case-insensitively.
func ParseSource(name string) (Source, bool) {
	for _, s := range Sources() {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, true
		}
	}
	return "", false
}

// PlaceholderImage is used whenever a provider supplies no image.
const PlaceholderImage = "/placeholder.png"

// Article is the provider-agnostic news item.
type Article struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
	PublishedAt *string `json:"published_at"`
	Source      Source  `json:"source,omitempty"`
}

// DescriptionText returns the description or an empty string when absent.
func (a Article) DescriptionText() string {
	if a.Description == nil {
		return ""
	}
	return *a.Description
}

// Credentials holds the opaque API keys for each provider.
type Credentials struct {
	Currents   string
	Mediastack string
	NewsAPI    string
}

// For returns the credential belonging to source.
func (c Credentials) For(src Source) string {
	switch src {
	case SourceCurrents:
		return c.Currents
	case SourceMediastack:
		return c.Mediastack
	case SourceNewsAPI:
		return c.NewsAPI
	default:
		return ""
	}
}
