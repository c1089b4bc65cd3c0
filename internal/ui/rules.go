package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/lview/internal/filter"
	"github.com/TimelordUK/lview/internal/highlight"
	"github.com/TimelordUK/lview/internal/ruleset"
	"github.com/TimelordUK/lview/internal/session"
)

type ruleGroup int

const (
	groupFilter ruleGroup = iota
	groupHighlight
)

// ruleItem is one row of the rules panel. Rows hold the rule ID, so edits
// reach the right rule even if the list changed since the panel was drawn.
type ruleItem struct {
	group   ruleGroup
	id      ruleset.ID
	label   string
	pattern string
	enabled bool
}

// rulesPanel lists filter and highlight rules and edits them by ID
type rulesPanel struct {
	cursor  int
	editing ruleset.ID
	keys    rulesKeyMap
}

func newRulesPanel() *rulesPanel {
	return &rulesPanel{keys: newRulesKeyMap()}
}

// items returns filters first, then highlights, each in rule order
func (rp *rulesPanel) items(s *session.Session) []ruleItem {
	var out []ruleItem
	for _, e := range s.Filters() {
		out = append(out, ruleItem{
			group:   groupFilter,
			id:      e.ID,
			label:   e.Value.Kind.String(),
			pattern: e.Value.Pattern,
			enabled: e.Value.Enabled,
		})
	}
	for _, e := range s.Highlights().Entries() {
		out = append(out, ruleItem{
			group:   groupHighlight,
			id:      e.ID,
			label:   fmt.Sprintf("%s %s", e.Value.Kind, e.Value.Color),
			pattern: e.Value.Pattern,
			enabled: e.Value.Enabled,
		})
	}
	return out
}

func (rp *rulesPanel) selected(s *session.Session) (ruleItem, bool) {
	items := rp.items(s)
	if len(items) == 0 {
		return ruleItem{}, false
	}
	rp.clamp(len(items))
	return items[rp.cursor], true
}

func (rp *rulesPanel) clamp(n int) {
	if rp.cursor >= n {
		rp.cursor = n - 1
	}
	if rp.cursor < 0 {
		rp.cursor = 0
	}
}

func (rp *rulesPanel) move(delta int, s *session.Session) {
	rp.cursor += delta
	rp.clamp(len(rp.items(s)))
}

func (rp *rulesPanel) toggle(s *session.Session) {
	item, ok := rp.selected(s)
	if !ok {
		return
	}
	if item.group == groupFilter {
		s.ToggleFilter(item.id)
	} else {
		s.ToggleHighlight(item.id)
	}
}

func (rp *rulesPanel) remove(s *session.Session) {
	item, ok := rp.selected(s)
	if !ok {
		return
	}
	if item.group == groupFilter {
		s.RemoveFilter(item.id)
	} else {
		s.RemoveHighlight(item.id)
	}
	rp.clamp(len(rp.items(s)))
}

// switchKind flips include/exclude or background/letters
func (rp *rulesPanel) switchKind(s *session.Session) {
	item, ok := rp.selected(s)
	if !ok {
		return
	}
	if item.group == groupFilter {
		r, ok := s.Filter(item.id)
		if !ok {
			return
		}
		kind := filter.Exclude
		if r.Kind == filter.Exclude {
			kind = filter.Include
		}
		s.SetFilterKind(item.id, kind)
		return
	}
	r, ok := s.Highlights().Get(item.id)
	if !ok {
		return
	}
	kind := highlight.Letters
	if r.Kind == highlight.Letters {
		kind = highlight.Background
	}
	s.SetHighlightKind(item.id, kind)
}

// beginEdit remembers the rule being edited and returns its pattern
func (rp *rulesPanel) beginEdit(s *session.Session) (string, bool) {
	item, ok := rp.selected(s)
	if !ok {
		return "", false
	}
	rp.editing = item.id
	return item.pattern, true
}

// commitEdit applies pattern to the rule being edited. A rule removed in the
// meantime is left alone.
func (rp *rulesPanel) commitEdit(s *session.Session, pattern string) bool {
	id := rp.editing
	rp.editing = ""
	if id == "" || pattern == "" {
		return false
	}
	if s.EditFilter(id, pattern) {
		return true
	}
	return s.EditHighlight(id, pattern)
}

func (rp *rulesPanel) view(s *session.Session, width int, styles panelStyles) string {
	items := rp.items(s)
	rp.clamp(len(items))

	var b strings.Builder
	b.WriteString(styles.title.Render("Rules"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(styles.dim.Render("  no rules"))
		return b.String()
	}

	for i, item := range items {
		check := "[ ]"
		if item.enabled {
			check = "[x]"
		}
		group := "filter"
		if item.group == groupHighlight {
			group = "highlight"
		}
		line := fmt.Sprintf("%s %-9s %-18s %q", check, group, item.label, item.pattern)
		if i == rp.cursor {
			line = styles.cursor.Width(width).Render("> " + line)
		} else {
			line = "  " + line
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return b.String()
}

type panelStyles struct {
	title  lipgloss.Style
	cursor lipgloss.Style
	dim    lipgloss.Style
}
