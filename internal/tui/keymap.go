// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/toeirei/wordle-assistant/internal/i18n"
)

type keyMap struct {
	Type    key.Binding
	CycleAt key.Binding
	Cycle   key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Delete  key.Binding
	Debug   key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Type, km.Cycle, km.Left, km.Down, km.Delete, km.Debug, km.Copy, km.Quit}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Type, km.Delete},
		{km.CycleAt, km.Cycle},
		{km.Up, km.Down, km.Left, km.Right},
		{km.Debug, km.Copy, km.Quit},
	}
}

var _ help.KeyMap = keyMap{}

// newKeyMap builds the bindings with help texts in the active language.
func newKeyMap() keyMap {
	letters := make([]string, 0, 52)
	for c := 'a'; c <= 'z'; c++ {
		letters = append(letters, string(c), string(c-'a'+'A'))
	}
	return keyMap{
		Type: key.NewBinding(
			key.WithKeys(letters...),
			key.WithHelp("a-z", i18n.T("tui.key.type")),
		),
		CycleAt: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", i18n.T("tui.key.cycle_at")),
		),
		Cycle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("1-5/space", i18n.T("tui.key.cycle")),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", i18n.T("tui.key.prev_row")),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "enter"),
			key.WithHelp("enter/↓", i18n.T("tui.key.next_row")),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", i18n.T("tui.key.move")),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", i18n.T("tui.key.move")),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", i18n.T("tui.key.delete")),
		),
		Debug: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", i18n.T("tui.key.debug")),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", i18n.T("tui.key.copy")),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", i18n.T("tui.key.quit")),
		),
	}
}
