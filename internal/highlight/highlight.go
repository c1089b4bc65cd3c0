// Package highlight decides per line which highlight colors apply.
// It is stateless: the renderer queries it for every visible row.
package highlight

import (
	"strings"

	"github.com/TimelordUK/lview/internal/ruleset"
)

// Kind selects what a highlight recolors
type Kind int

const (
	// Background fills the whole row
	Background Kind = iota
	// Letters recolors the glyphs
	Letters
)

// String returns the kind name
func (k Kind) String() string {
	if k == Letters {
		return "letters"
	}
	return "background"
}

// ParseKind maps a config name to a Kind
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "background", "bg":
		return Background, true
	case "letters", "fg", "foreground":
		return Letters, true
	}
	return Background, false
}

// Rule colors lines containing Pattern
type Rule struct {
	Kind    Kind
	Pattern string
	Color   string // lipgloss color: ANSI index or "#rrggbb"
	Enabled bool
}

// Match returns the color of the first enabled rule of kind whose pattern
// is a literal substring of text. Rules are tried in slice order.
func Match(text string, rules []Rule, kind Kind) (string, bool) {
	for _, r := range rules {
		if !r.Enabled || r.Kind != kind {
			continue
		}
		if strings.Contains(text, r.Pattern) {
			return r.Color, true
		}
	}
	return "", false
}

// Result holds both highlight kinds for one line
type Result struct {
	Background    string
	HasBackground bool
	Letters       string
	HasLetters    bool
}

// MatchAll evaluates both kinds independently
func MatchAll(text string, rules []Rule) Result {
	var res Result
	res.Background, res.HasBackground = Match(text, rules, Background)
	res.Letters, res.HasLetters = Match(text, rules, Letters)
	return res
}

// RuleSet is the ordered set of highlight rules. Order decides which rule
// wins when several match.
type RuleSet struct {
	list ruleset.List[Rule]
}

// NewRuleSet creates an empty rule set
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add appends an enabled rule
func (s *RuleSet) Add(kind Kind, pattern, color string) ruleset.ID {
	return s.list.Add(Rule{Kind: kind, Pattern: pattern, Color: color, Enabled: true})
}

// AddRule appends r as given
func (s *RuleSet) AddRule(r Rule) ruleset.ID {
	return s.list.Add(r)
}

// Remove deletes a rule
func (s *RuleSet) Remove(id ruleset.ID) bool {
	return s.list.Remove(id)
}

// Toggle flips a rule's enabled state
func (s *RuleSet) Toggle(id ruleset.ID) bool {
	return s.list.Update(id, func(r *Rule) { r.Enabled = !r.Enabled })
}

// Edit replaces a rule's pattern
func (s *RuleSet) Edit(id ruleset.ID, pattern string) bool {
	return s.list.Update(id, func(r *Rule) { r.Pattern = pattern })
}

// SetColor replaces a rule's color
func (s *RuleSet) SetColor(id ruleset.ID, color string) bool {
	return s.list.Update(id, func(r *Rule) { r.Color = color })
}

// SetKind changes a rule between background and letters
func (s *RuleSet) SetKind(id ruleset.ID, kind Kind) bool {
	return s.list.Update(id, func(r *Rule) { r.Kind = kind })
}

// Get returns a rule by id
func (s *RuleSet) Get(id ruleset.ID) (Rule, bool) {
	return s.list.Get(id)
}

// At returns the entry at a display position
func (s *RuleSet) At(i int) (ruleset.Entry[Rule], bool) {
	return s.list.At(i)
}

// Len returns the number of rules
func (s *RuleSet) Len() int {
	return s.list.Len()
}

// Entries returns the rules with their ids, in order
func (s *RuleSet) Entries() []ruleset.Entry[Rule] {
	return s.list.Entries()
}

// Rules returns the rules in order
func (s *RuleSet) Rules() []Rule {
	return s.list.Values()
}
