package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/navigation"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	linkStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75"))
)

const (
	allSourcesHeader = "All Sources"
	noArticles       = "No articles available."
	noMatches        = "No articles match the current filter."
	noDescription    = "No description available"
	moreHeader       = "More from this source (use -jump \"<title>\"):"
)

// View renders the merged list when active is navigation.AllSources, or the
// current article of the named source otherwise.
func View(v navigation.View, active string) string {
	if active == "" || active == navigation.AllSources {
		return allSources(v)
	}
	for _, sv := range v.Sources {
		if strings.EqualFold(string(sv.Source), active) {
			return source(v.Term, sv)
		}
	}
	return mutedStyle.Render(fmt.Sprintf("Unknown source %q.", active)) + "\n"
}

func allSources(v navigation.View) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(allSourcesHeader))
	b.WriteString(filterSuffix(v.Term))
	b.WriteString("\n\n")

	if len(v.All) == 0 {
		b.WriteString(mutedStyle.Render(emptyMessage(v.Term)))
		b.WriteString("\n")
		return b.String()
	}

	for i, a := range v.All {
		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, sourceStyle.Render("["+string(a.Source)+"]"), titleStyle.Render(a.Title))
		if a.PublishedAt != nil {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(*a.PublishedAt))
		}
		fmt.Fprintf(&b, "    %s\n", linkStyle.Render(a.URL))
	}
	return b.String()
}

func source(term string, sv navigation.SourceView) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(string(sv.Source)))
	if sv.Article != nil {
		fmt.Fprintf(&b, " %s", mutedStyle.Render(fmt.Sprintf("%d/%d", sv.Index+1, sv.Total)))
	}
	b.WriteString(filterSuffix(term))
	b.WriteString("\n\n")

	if sv.Article == nil {
		b.WriteString(mutedStyle.Render(emptyMessage(term)))
		b.WriteString("\n")
	} else {
		b.WriteString(article(*sv.Article))
	}
	b.WriteString(jumpTargets(sv.Others))
	return b.String()
}

// jumpTargets lists other titles of the source that can be passed to -jump.
func jumpTargets(others []domain.Article) string {
	if len(others) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(moreHeader))
	b.WriteString("\n")
	for i, a := range others {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, a.Title)
	}
	return b.String()
}

func article(a domain.Article) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title))
	b.WriteString("\n")
	if a.Description != nil && *a.Description != "" {
		b.WriteString(*a.Description)
	} else {
		b.WriteString(mutedStyle.Render(noDescription))
	}
	b.WriteString("\n")
	if a.PublishedAt != nil {
		b.WriteString(mutedStyle.Render("Published: " + *a.PublishedAt))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("Image: " + a.ImageURL))
	b.WriteString("\n")
	b.WriteString(linkStyle.Render(a.URL))
	b.WriteString("\n")
	return b.String()
}

func filterSuffix(term string) string {
	if strings.TrimSpace(term) == "" {
		return ""
	}
	return " " + mutedStyle.Render(fmt.Sprintf("(filter: %q)", term))
}

func emptyMessage(term string) string {
	if strings.TrimSpace(term) == "" {
		return noArticles
	}
	return noMatches
}
