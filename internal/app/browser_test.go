package app

import (
	"context"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/navigation"
)

func TestBrowseDefaultsToAllSources(t *testing.T) {
	b := newBrowser(&fakeAggregator{res: sampleResult()}, newTestStore(t), domain.Credentials{}, nil)

	out, session, err := b.Browse(context.Background(), BrowseRequest{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if session.ID != DefaultSessionID || session.Active != navigation.AllSources {
		t.Fatalf("unexpected session: %+v", session)
	}
	for _, title := range []string{"Go generics deep dive", "Chip shortage eases", "AI regulation update"} {
		if !strings.Contains(out, title) {
			t.Fatalf("output missing %q:\n%s", title, out)
		}
	}
}

func TestBrowseNavigationPersistsAcrossCalls(t *testing.T) {
	store := newTestStore(t)
	b := newBrowser(&fakeAggregator{res: sampleResult()}, store, domain.Credentials{}, nil)
	ctx := context.Background()

	if _, _, err := b.Browse(ctx, BrowseRequest{SessionID: "s1", Source: "currents", Action: ActionNext}); err != nil {
		t.Fatalf("Browse next: %v", err)
	}
	out, session, err := b.Browse(ctx, BrowseRequest{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if got := session.Cursor(domain.SourceCurrents).Index; got != 1 {
		t.Fatalf("cursor not restored, index=%d", got)
	}
	if !strings.Contains(out, "Kubernetes 1.30") {
		t.Fatalf("expected second currents article:\n%s", out)
	}

	_, session, err = b.Browse(ctx, BrowseRequest{SessionID: "s1", Action: ActionNext})
	if err != nil {
		t.Fatalf("Browse next: %v", err)
	}
	if got := session.Cursor(domain.SourceCurrents).Index; got != 0 {
		t.Fatalf("expected wraparound to 0, got %d", got)
	}

	_, session, err = b.Browse(ctx, BrowseRequest{SessionID: "s1", Action: ActionPrev})
	if err != nil {
		t.Fatalf("Browse prev: %v", err)
	}
	if got := session.Cursor(domain.SourceCurrents).Index; got != 1 {
		t.Fatalf("expected retreat to wrap to 1, got %d", got)
	}
}

func TestBrowseTermChangeDoesNotReindex(t *testing.T) {
	b := newBrowser(&fakeAggregator{res: sampleResult()}, newTestStore(t), domain.Credentials{}, nil)
	ctx := context.Background()

	if _, _, err := b.Browse(ctx, BrowseRequest{SessionID: "s", Source: "Currents", Action: ActionJump, JumpTitle: "Kubernetes 1.30"}); err != nil {
		t.Fatalf("Browse jump: %v", err)
	}

	term := "generics"
	out, session, err := b.Browse(ctx, BrowseRequest{SessionID: "s", Term: &term})
	if err != nil {
		t.Fatalf("Browse term: %v", err)
	}
	if got := session.Cursor(domain.SourceCurrents).Index; got != 1 {
		t.Fatalf("filter change must not move the cursor, index=%d", got)
	}
	if session.Term != "generics" {
		t.Fatalf("term not stored: %q", session.Term)
	}
	if !strings.Contains(out, "No articles match the current filter.") {
		t.Fatalf("out of range cursor should render no article:\n%s", out)
	}
	if !strings.Contains(out, " 1. Go generics deep dive") {
		t.Fatalf("remaining match should be listed as a jump target:\n%s", out)
	}

	cleared := ""
	_, session, err = b.Browse(ctx, BrowseRequest{SessionID: "s", Term: &cleared})
	if err != nil {
		t.Fatalf("Browse clear: %v", err)
	}
	if session.Term != "" {
		t.Fatalf("expected term cleared, got %q", session.Term)
	}
}

func TestBrowseFilterAppliesToAllSources(t *testing.T) {
	b := newBrowser(&fakeAggregator{res: sampleResult()}, newTestStore(t), domain.Credentials{}, nil)

	term := "GO"
	out, _, err := b.Browse(context.Background(), BrowseRequest{Term: &term})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !strings.Contains(out, "Go generics deep dive") || !strings.Contains(out, "Chip shortage eases") {
		t.Fatalf("expected title and description matches:\n%s", out)
	}
	if strings.Contains(out, "AI regulation update") {
		t.Fatalf("unexpected non-matching article:\n%s", out)
	}
}

func TestBrowseRejectsInvalidRequests(t *testing.T) {
	b := newBrowser(&fakeAggregator{res: sampleResult()}, newTestStore(t), domain.Credentials{}, nil)
	ctx := context.Background()

	if _, _, err := b.Browse(ctx, BrowseRequest{Source: "bbc"}); err == nil {
		t.Fatalf("expected unknown source error")
	}
	if _, _, err := b.Browse(ctx, BrowseRequest{Action: ActionNext}); err == nil {
		t.Fatalf("expected error when navigating the merged view")
	}
}

func TestBrowseEmptyResultIsNotAnError(t *testing.T) {
	b := newBrowser(&fakeAggregator{res: emptyResult()}, newTestStore(t), domain.Credentials{}, nil)

	out, session, err := b.Browse(context.Background(), BrowseRequest{Source: "NewsAPI", Action: ActionNext})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if got := session.Cursor(domain.SourceNewsAPI).Index; got != 0 {
		t.Fatalf("advance over empty list must be a no-op, index=%d", got)
	}
	if !strings.Contains(out, "No articles available.") {
		t.Fatalf("expected empty message:\n%s", out)
	}
}
