package filter

import (
	"strings"

	"github.com/TimelordUK/lview/internal/ruleset"
)

// Kind selects whether a rule keeps or drops matching lines
type Kind int

const (
	Include Kind = iota
	Exclude
)

// String returns the kind name
func (k Kind) String() string {
	if k == Exclude {
		return "exclude"
	}
	return "include"
}

// ParseKind maps "include"/"exclude" (any case) to a Kind
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "include", "in", "+":
		return Include, true
	case "exclude", "ex", "-":
		return Exclude, true
	}
	return Include, false
}

// Rule is a single include/exclude pattern
type Rule struct {
	Kind    Kind
	Pattern string
	Enabled bool

	// IsRegex is carried for config compatibility; matching is always literal.
	IsRegex bool
}

// Matches reports whether the rule pattern is a literal, case-sensitive
// substring of text
func (r Rule) Matches(text string) bool {
	return strings.Contains(text, r.Pattern)
}

// RuleSet is the ordered set of filter rules
type RuleSet struct {
	list ruleset.List[Rule]
}

// NewRuleSet creates an empty rule set
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Add appends an enabled rule
func (s *RuleSet) Add(kind Kind, pattern string) ruleset.ID {
	return s.list.Add(Rule{Kind: kind, Pattern: pattern, Enabled: true})
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

// SetKind changes a rule between include and exclude
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
