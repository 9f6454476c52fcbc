package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typestrike/internal/core"
)

// KeyMap defines the non-letter key bindings shown in the help line.
type KeyMap struct {
	Confirm key.Binding
	Pause   key.Binding
	Left    key.Binding
	Right   key.Binding
	Retry   key.Binding
	Menu    key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Pause, k.Left, k.Right, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Pause, k.Left, k.Right},
		{k.Retry, k.Menu, k.History, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/next"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next level"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "retry"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "menu"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to input facts.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultKeyMap()}
}

// MapKeyToFrame updates an input frame based on a key message.
// Letter keys become typed facts. 'm' and 'r' are also reported as the
// Menu and Retry actions; the game decides which reading applies in its
// current phase. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, km.Keys.Quit):
		return true
	case key.Matches(msg, km.Keys.Confirm):
		frame.Set(core.ActionConfirm)
		return false
	case key.Matches(msg, km.Keys.Pause):
		frame.Set(core.ActionPause)
		return false
	case key.Matches(msg, km.Keys.Left):
		frame.Set(core.ActionLeft)
		return false
	case key.Matches(msg, km.Keys.Right):
		frame.Set(core.ActionRight)
		return false
	}

	if msg.Type != tea.KeyRunes || msg.Alt {
		return false
	}
	for _, r := range msg.Runes {
		switch unicode.ToLower(r) {
		case 'm':
			frame.Set(core.ActionMenu)
		case 'r':
			frame.Set(core.ActionRetry)
		}
		frame.Type(r)
	}
	return false
}
