package navigation

import (
	"time"

	"github.com/samvad-hq/samvad-tech-digest/internal/aggregator"
	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/filter"
)

// AllSources selects the merged view instead of a single source.
const AllSources = "all"

// Session is the serializable browsing state of one reader: the active
// filter term, the selected view and one cursor per source. Methods return
// an updated copy and never modify the receiver.
type Session struct {
	ID        string                  `json:"id"`
	Term      string                  `json:"term"`
	Active    string                  `json:"active"`
	Cursors   map[domain.Source]State `json:"cursors"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// NewSession starts a session on the merged view with every cursor at 0.
func NewSession(id string) Session {
	cursors := make(map[domain.Source]State, len(domain.Sources()))
	for _, src := range domain.Sources() {
		cursors[src] = State{}
	}
	return Session{ID: id, Active: AllSources, Cursors: cursors}
}

// WithTerm changes the filter term. Cursors are left as they are.
func (s Session) WithTerm(term string) Session {
	out := s.clone()
	out.Term = term
	return out
}

// WithActive selects the merged view or one source.
func (s Session) WithActive(active string) Session {
	out := s.clone()
	out.Active = active
	return out
}

// Cursor returns the state for src.
func (s Session) Cursor(src domain.Source) State {
	return s.Cursors[src]
}

// Filtered returns the source's articles under the session's filter term.
func (s Session) Filtered(res aggregator.Result, src domain.Source) []domain.Article {
	return filter.Filter(res.BySource[src], s.Term)
}

// Advance moves src's cursor forward over its filtered articles.
func (s Session) Advance(res aggregator.Result, src domain.Source) Session {
	out := s.clone()
	out.Cursors[src] = Advance(s.Cursor(src), len(s.Filtered(res, src)))
	return out
}

// Retreat moves src's cursor backward over its filtered articles.
func (s Session) Retreat(res aggregator.Result, src domain.Source) Session {
	out := s.clone()
	out.Cursors[src] = Retreat(s.Cursor(src), len(s.Filtered(res, src)))
	return out
}

// JumpTo points src's cursor at the first filtered article titled title.
func (s Session) JumpTo(res aggregator.Result, src domain.Source, title string) Session {
	out := s.clone()
	out.Cursors[src] = JumpTo(s.Cursor(src), s.Filtered(res, src), title)
	return out
}

// SourceView is what a reader sees for one source.
type SourceView struct {
	Source  domain.Source    `json:"source"`
	Index   int              `json:"index"`
	Total   int              `json:"total"`
	Article *domain.Article  `json:"article,omitempty"`
	Others  []domain.Article `json:"others,omitempty"`
}

// maxOthers caps the jump targets listed under the current article.
const maxOthers = 3

// View is the renderer-independent snapshot of a session against a result.
type View struct {
	Term    string           `json:"term"`
	All     []domain.Article `json:"all"`
	Sources []SourceView     `json:"sources"`
}

// View evaluates the session against res: the filtered merged list plus the
// current article of every source (nil when the cursor is out of range).
func (s Session) View(res aggregator.Result) View {
	v := View{
		Term: s.Term,
		All:  filter.Filter(res.Merged, s.Term),
	}
	for _, src := range domain.Sources() {
		list := s.Filtered(res, src)
		sv := SourceView{Source: src, Index: s.Cursor(src).Index, Total: len(list)}
		if a, ok := Current(s.Cursor(src), list); ok {
			sv.Article = &a
		}
		sv.Others = others(list, sv.Index)
		v.Sources = append(v.Sources, sv)
	}
	return v
}

// others returns up to maxOthers articles of list, skipping the one at index.
func others(list []domain.Article, index int) []domain.Article {
	var out []domain.Article
	for i, a := range list {
		if len(out) == maxOthers {
			break
		}
		if i != index {
			out = append(out, a)
		}
	}
	return out
}

func (s Session) clone() Session {
	out := s
	out.Cursors = make(map[domain.Source]State, len(s.Cursors))
	for k, v := range s.Cursors {
		out.Cursors[k] = v
	}
	return out
}
