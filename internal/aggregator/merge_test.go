package aggregator

import (
	"testing"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
)

func TestSortByPublishedKeepsUndatedPositions(t *testing.T) {
	in := []domain.Article{
		{Title: "null-a", Source: domain.SourceNewsAPI},
		{Title: "jan-2", PublishedAt: ts("2024-01-02"), Source: domain.SourceCurrents},
		{Title: "null-b", Source: domain.SourceNewsAPI},
		{Title: "jan-1", PublishedAt: ts("2024-01-01"), Source: domain.SourceMediastack},
	}

	got := titles(SortByPublished(in))
	want := []string{"null-a", "jan-2", "null-b", "jan-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortByPublishedOrdersDatedDescending(t *testing.T) {
	in := []domain.Article{
		{Title: "old", PublishedAt: ts("2024-01-01 08:00:00 +0000")},
		{Title: "none"},
		{Title: "new", PublishedAt: ts("2024-01-05T08:00:00+00:00")},
		{Title: "mid", PublishedAt: ts("2024-01-03T08:00:00Z")},
	}

	got := titles(SortByPublished(in))
	want := []string{"new", "none", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if in[0].Title != "old" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSortByPublishedStableForEqualTimestamps(t *testing.T) {
	in := []domain.Article{
		{Title: "first", PublishedAt: ts("2024-01-02")},
		{Title: "second", PublishedAt: ts("2024-01-02T00:00:00Z")},
		{Title: "unparsable", PublishedAt: ts("yesterday")},
		{Title: "third", PublishedAt: ts("2024-01-02")},
	}

	got := titles(SortByPublished(in))
	want := []string{"first", "second", "unparsable", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParsePublishedFormats(t *testing.T) {
	for _, raw := range []string{
		"2024-01-02 10:00:00 +0000",
		"2024-01-02T10:00:00+00:00",
		"2024-01-02T10:00:00Z",
		"2024-01-02",
	} {
		if _, ok := ParsePublished(raw); !ok {
			t.Errorf("ParsePublished(%q) failed", raw)
		}
	}
	if _, ok := ParsePublished("  "); ok {
		t.Errorf("blank timestamp should not parse")
	}
}
