package filter

import (
	"sort"

	"github.com/TimelordUK/lview/internal/ruleset"
	"github.com/TimelordUK/lview/internal/source"
)

// Provider wraps a LineProvider and exposes the lines that pass its rules.
// Any rule mutation marks it dirty; the working set is rebuilt in full on
// the next read.
type Provider struct {
	source source.LineProvider
	rules  *RuleSet
	scope  func(text string) bool

	// Cached working copy of the lines that pass the rules
	filtered   []source.LogicalLine
	dirty      bool
	generation uint64
}

// NewProvider creates a filtered provider over src
func NewProvider(src source.LineProvider) *Provider {
	return &Provider{
		source: src,
		rules:  NewRuleSet(),
		dirty:  true,
	}
}

// SetSource swaps the underlying lines, keeping the rules
func (p *Provider) SetSource(src source.LineProvider) {
	p.source = src
	p.dirty = true
}

// AddRule appends an enabled rule
func (p *Provider) AddRule(kind Kind, pattern string) ruleset.ID {
	p.dirty = true
	return p.rules.Add(kind, pattern)
}

// AddPreset appends r as given
func (p *Provider) AddPreset(r Rule) ruleset.ID {
	p.dirty = true
	return p.rules.AddRule(r)
}

// RemoveRule deletes a rule
func (p *Provider) RemoveRule(id ruleset.ID) bool {
	return p.touch(p.rules.Remove(id))
}

// ToggleRule flips a rule's enabled state
func (p *Provider) ToggleRule(id ruleset.ID) bool {
	return p.touch(p.rules.Toggle(id))
}

// EditRule replaces a rule's pattern
func (p *Provider) EditRule(id ruleset.ID, pattern string) bool {
	return p.touch(p.rules.Edit(id, pattern))
}

// SetRuleKind switches a rule between include and exclude
func (p *Provider) SetRuleKind(id ruleset.ID, kind Kind) bool {
	return p.touch(p.rules.SetKind(id, kind))
}

// ClearRules removes every rule
func (p *Provider) ClearRules() {
	p.rules = NewRuleSet()
	p.dirty = true
}

// SetScope restricts the working set to lines keep accepts, ahead of the
// rules. A nil keep removes the restriction.
func (p *Provider) SetScope(keep func(text string) bool) {
	p.scope = keep
	p.dirty = true
}

func (p *Provider) touch(changed bool) bool {
	if changed {
		p.dirty = true
	}
	return changed
}

// Rules returns the rule set; callers must mutate through the provider
func (p *Provider) Rules() *RuleSet {
	return p.rules
}

// MarkDirty marks the working set as needing rebuild
func (p *Provider) MarkDirty() {
	p.dirty = true
}

// IsDirty reports whether the next read rebuilds the working set
func (p *Provider) IsDirty() bool {
	return p.dirty
}

// IsFiltered returns true if a scope is set or any rule is enabled
func (p *Provider) IsFiltered() bool {
	return p.scope != nil || anyEnabled(p.rules.Rules())
}

// Generation increases every time the working set is rebuilt
func (p *Provider) Generation() uint64 {
	p.rebuild()
	return p.generation
}

// rebuild recomputes the working set if dirty
func (p *Provider) rebuild() {
	if !p.dirty {
		return
	}

	var all []source.LogicalLine
	if p.source != nil {
		all = p.source.GetLines(0, p.source.LineCount())
	}
	if p.scope != nil {
		var scoped []source.LogicalLine
		for _, line := range all {
			if p.scope(line.Text) {
				scoped = append(scoped, line)
			}
		}
		all = scoped
	}
	p.filtered = Apply(all, p.rules.Rules())
	p.generation++
	p.dirty = false
}

// Lines returns a copy of the working set
func (p *Provider) Lines() []source.LogicalLine {
	p.rebuild()
	return source.Clone(p.filtered)
}

// LineCount returns total number of filtered lines
func (p *Provider) LineCount() int {
	p.rebuild()
	return len(p.filtered)
}

// GetLine returns line at filtered index
func (p *Provider) GetLine(index int) (source.LogicalLine, bool) {
	p.rebuild()
	if index < 0 || index >= len(p.filtered) {
		return source.LogicalLine{}, false
	}
	return p.filtered[index], true
}

// GetLines returns a range of filtered lines
func (p *Provider) GetLines(start, count int) []source.LogicalLine {
	p.rebuild()
	if start < 0 {
		start = 0
	}
	if count <= 0 || start >= len(p.filtered) {
		return nil
	}
	end := start + count
	if end > len(p.filtered) {
		end = len(p.filtered)
	}
	return source.Clone(p.filtered[start:end])
}

// OriginalLineNumber returns the original line number for a filtered index
func (p *Provider) OriginalLineNumber(filteredIndex int) int {
	line, ok := p.GetLine(filteredIndex)
	if !ok {
		return -1
	}
	return line.Index
}

// FilteredIndexFor returns the filtered index of an original line, or -1 if
// the line is filtered out
func (p *Provider) FilteredIndexFor(originalIndex int) int {
	p.rebuild()
	i := sort.Search(len(p.filtered), func(i int) bool {
		return p.filtered[i].Index >= originalIndex
	})
	if i < len(p.filtered) && p.filtered[i].Index == originalIndex {
		return i
	}
	return -1
}
