package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typestrike/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space confirms", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"m is menu", runeKey('m'), core.ActionMenu},
		{"R is retry", runeKey('R'), core.ActionRetry},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if quit := km.MapKeyToFrame(tc.msg, &frame); quit {
				t.Fatal("unexpected quit")
			}
			if !frame.Has(tc.expected) {
				t.Errorf("expected %v in frame", tc.expected)
			}
		})
	}
}

func TestKeyMapperTypedKeys(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	for _, r := range "fJ;m1" {
		km.MapKeyToFrame(runeKey(r), &frame)
	}

	got := string(frame.TypedKeys())
	if got != "FJM;" {
		t.Errorf("typed keys = %q, expected FJM;", got)
	}
}

func TestKeyMapperQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c should quit")
	}
	// q is a letter, not a quit key
	if km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q must not quit")
	}
	if !frame.Typed[16] {
		t.Error("q should be typed")
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if d := frameDelta(time.Time{}, now); d != 0 {
		t.Errorf("first tick delta = %v, expected 0", d)
	}
	if d := frameDelta(now, now.Add(16*time.Millisecond)); d != 0.016 {
		t.Errorf("delta = %v, expected 0.016", d)
	}
	if d := frameDelta(now, now.Add(5*time.Second)); d != maxDelta {
		t.Errorf("delta = %v, expected clamp to %v", d, maxDelta)
	}
	if d := frameDelta(now, now.Add(-time.Millisecond)); d != 0 {
		t.Errorf("backwards delta = %v, expected 0", d)
	}
}
