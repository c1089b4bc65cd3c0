// Package filter derives the visible subset of logical lines from
// include/exclude rules.
package filter

import "github.com/TimelordUK/lview/internal/source"

// Passes reports whether text survives rules. With any enabled include rule,
// text must match at least one of them; it must then match no enabled
// exclude rule. Rule order does not matter.
func Passes(text string, rules []Rule) bool {
	hasInclude := false
	included := false
	for _, r := range rules {
		if !r.Enabled || r.Kind != Include {
			continue
		}
		hasInclude = true
		if r.Matches(text) {
			included = true
			break
		}
	}
	if hasInclude && !included {
		return false
	}

	for _, r := range rules {
		if r.Enabled && r.Kind == Exclude && r.Matches(text) {
			return false
		}
	}
	return true
}

// Apply returns the lines that pass rules, in original order and with their
// original indices. The result never aliases lines.
func Apply(lines []source.LogicalLine, rules []Rule) []source.LogicalLine {
	if !anyEnabled(rules) {
		return source.Clone(lines)
	}

	out := make([]source.LogicalLine, 0, len(lines))
	for _, line := range lines {
		if Passes(line.Text, rules) {
			out = append(out, line)
		}
	}
	return out
}

func anyEnabled(rules []Rule) bool {
	for _, r := range rules {
		if r.Enabled {
			return true
		}
	}
	return false
}
