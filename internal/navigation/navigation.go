package navigation

import "github.com/samvad-hq/samvad-tech-digest/internal/domain"

// State is the round-robin cursor for one source. It is only changed by
// Advance, Retreat and JumpTo; a filter change never re-indexes it.
type State struct {
	Index int `json:"index"`
}

// Advance moves to the next article, wrapping to 0 after the last one.
// With n == 0 the state is returned unchanged.
func Advance(s State, n int) State {
	if n <= 0 {
		return s
	}
	return State{Index: mod(s.Index+1, n)}
}

// Retreat moves to the previous article, wrapping to n-1 before the first one.
// With n == 0 the state is returned unchanged.
func Retreat(s State, n int) State {
	if n <= 0 {
		return s
	}
	return State{Index: mod(s.Index-1, n)}
}

// JumpTo points the cursor at the first article whose title equals title
// exactly. Without a match the state is returned unchanged.
func JumpTo(s State, articles []domain.Article, title string) State {
	for i, a := range articles {
		if a.Title == title {
			return State{Index: i}
		}
	}
	return s
}

// Current returns the article under the cursor. It reports false when the
// index is outside articles, which happens after a filter shrinks the list.
func Current(s State, articles []domain.Article) (domain.Article, bool) {
	if s.Index < 0 || s.Index >= len(articles) {
		return domain.Article{}, false
	}
	return articles[s.Index], true
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
