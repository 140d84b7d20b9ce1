package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/samvad-hq/samvad-tech-digest/internal/config"
	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
	"github.com/samvad-hq/samvad-tech-digest/internal/navigation"
	"github.com/samvad-hq/samvad-tech-digest/internal/render"
	"github.com/samvad-hq/samvad-tech-digest/internal/storage"
)

// Action is a navigation step requested by the reader.
type Action string

const (
	ActionNone Action = ""
	ActionNext Action = "next"
	ActionPrev Action = "prev"
	ActionJump Action = "jump"
)

// DefaultSessionID is used when the reader does not name a session.
const DefaultSessionID = "default"

// BrowseRequest describes one browse invocation. A nil Term keeps the
// stored filter; an empty Source keeps the stored view.
type BrowseRequest struct {
	SessionID string
	Term      *string
	Source    string
	Action    Action
	JumpTitle string
}

// Browser serves one-shot browse requests against a fresh aggregation.
type Browser struct {
	agg   Aggregator
	store storage.Store
	creds domain.Credentials
	log   logger.Logger
}

// NewBrowser builds the browse runtime from config.
func NewBrowser(cfg *config.Config, log logger.Logger) (*Browser, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	agg, err := buildAggregator(cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return newBrowser(agg, store, cfg.Credentials(), log), nil
}

func newBrowser(agg Aggregator, store storage.Store, creds domain.Credentials, log logger.Logger) *Browser {
	return &Browser{
		agg:   agg,
		store: store,
		creds: creds,
		log:   logger.Ensure(log),
	}
}

// Browse aggregates once, applies req to the stored session, renders the
// resulting view and saves the session back.
func (b *Browser) Browse(ctx context.Context, req BrowseRequest) (string, navigation.Session, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		id = DefaultSessionID
	}

	session, found, err := b.store.LoadSession(id)
	if err != nil {
		return "", navigation.Session{}, fmt.Errorf("load session %q: %w", id, err)
	}
	if !found {
		session = navigation.NewSession(id)
	}

	if req.Term != nil {
		session = session.WithTerm(strings.TrimSpace(*req.Term))
	}
	if s := strings.TrimSpace(req.Source); s != "" {
		active, err := resolveActive(s)
		if err != nil {
			return "", session, err
		}
		session = session.WithActive(active)
	}

	res := b.agg.Aggregate(ctx, b.creds)

	if req.Action != ActionNone {
		src, ok := domain.ParseSource(session.Active)
		if !ok {
			return "", session, fmt.Errorf("%s requires a single source, not %q", req.Action, session.Active)
		}
		switch req.Action {
		case ActionNext:
			session = session.Advance(res, src)
		case ActionPrev:
			session = session.Retreat(res, src)
		case ActionJump:
			session = session.JumpTo(res, src, req.JumpTitle)
		default:
			return "", session, fmt.Errorf("unknown action %q", req.Action)
		}
	}

	out := render.View(session.View(res), session.Active)

	if err := b.store.SaveSession(session); err != nil {
		return out, session, fmt.Errorf("save session %q: %w", id, err)
	}
	b.log.DebugObj("browse session saved", "browse_session", map[string]any{
		"session_id": session.ID,
		"active":     session.Active,
		"term":       session.Term,
	})
	return out, session, nil
}

// Close releases the store.
func (b *Browser) Close() {
	closeStore(b.store, b.log)
}

func resolveActive(name string) (string, error) {
	if strings.EqualFold(name, navigation.AllSources) {
		return navigation.AllSources, nil
	}
	src, ok := domain.ParseSource(name)
	if !ok {
		return "", fmt.Errorf("unknown source %q", name)
	}
	return string(src), nil
}
