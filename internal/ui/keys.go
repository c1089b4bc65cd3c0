package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/lview/internal/config"
)

// keyMap defines the normal-mode key bindings
type keyMap struct {
	Quit key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Goto     key.Binding

	// Search
	Search         key.Binding
	SearchBackward key.Binding
	NextMatch      key.Binding
	PrevMatch      key.Binding

	// Layout
	ToggleWrap  key.Binding
	FontUp      key.Binding
	FontDown    key.Binding
	LineNumbers key.Binding

	// Rules
	AddInclude   key.Binding
	AddExclude   key.Binding
	AddHighlight key.Binding
	Rules        key.Binding

	// Selection and files
	Select         key.Binding
	ClearSelection key.Binding
	Copy           key.Binding
	Save           key.Binding
	Open           key.Binding

	// Marks and levels
	SetMark     key.Binding
	JumpMark    key.Binding
	NextMark    key.Binding
	PrevMark    key.Binding
	ClearMarks  key.Binding
	LevelFilter key.Binding
}

// rulesKeyMap defines the bindings inside the rules panel
type rulesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Edit   key.Binding
	Kind   key.Binding
	Close  key.Binding
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// newKeyMap builds the normal-mode bindings from config
func newKeyMap(cfg config.KeybindingConfig) keyMap {
	return keyMap{
		Quit: binding(cfg.Quit, "quit"),

		Up:       binding(cfg.ScrollUp, "up"),
		Down:     binding(cfg.ScrollDown, "down"),
		PageUp:   binding(cfg.PageUp, "page up"),
		PageDown: binding(cfg.PageDown, "page down"),
		Top:      binding(cfg.Top, "top"),
		Bottom:   binding(cfg.Bottom, "bottom"),
		Goto:     binding(cfg.Goto, "goto"),

		Search:         binding(cfg.Search, "search"),
		SearchBackward: binding(cfg.SearchBackward, "search back"),
		NextMatch:      binding(cfg.NextMatch, "next"),
		PrevMatch:      binding(cfg.PrevMatch, "prev"),

		ToggleWrap:  binding(cfg.ToggleWrap, "wrap"),
		FontUp:      binding(cfg.FontUp, "font+"),
		FontDown:    binding(cfg.FontDown, "font-"),
		LineNumbers: binding(cfg.LineNumbers, "numbers"),

		AddInclude:   binding(cfg.AddInclude, "include"),
		AddExclude:   binding(cfg.AddExclude, "exclude"),
		AddHighlight: binding(cfg.AddHighlight, "highlight"),
		Rules:        binding(cfg.Rules, "rules"),

		Select:         binding(cfg.Select, "select"),
		ClearSelection: binding(cfg.ClearSelection, "clear"),
		Copy:           binding(cfg.Copy, "copy"),
		Save:           binding(cfg.Save, "save"),
		Open:           binding(cfg.Open, "open"),

		SetMark:     binding(cfg.SetMark, "mark"),
		JumpMark:    binding(cfg.JumpMark, "jump"),
		NextMark:    binding(cfg.NextMark, "next mark"),
		PrevMark:    binding(cfg.PrevMark, "prev mark"),
		ClearMarks:  binding(cfg.ClearMarks, "clear marks"),
		LevelFilter: binding(cfg.LevelFilter, "levels"),
	}
}

func newRulesKeyMap() rulesKeyMap {
	return rulesKeyMap{
		Up:     binding([]string{"k", "up"}, "up"),
		Down:   binding([]string{"j", "down"}, "down"),
		Toggle: binding([]string{" ", "enter"}, "toggle"),
		Delete: binding([]string{"d", "delete"}, "delete"),
		Edit:   binding([]string{"e"}, "edit"),
		Kind:   binding([]string{"t"}, "kind"),
		Close:  binding([]string{"esc", "r", "q"}, "close"),
	}
}

// shortHelp returns the one-line help for normal mode
func (k keyMap) shortHelp() string {
	bindings := []key.Binding{
		k.Search, k.NextMatch, k.AddInclude, k.AddExclude, k.AddHighlight,
		k.Rules, k.LevelFilter, k.SetMark, k.ToggleWrap, k.Copy, k.Save, k.Quit,
	}
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}
