// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/wordle-assistant/internal/solver"
)

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("81")
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")

	colorGreen  = lipgloss.Color("28")
	colorYellow = lipgloss.Color("178")
	colorGray   = lipgloss.Color("239")
	colorBlank  = lipgloss.Color("236")
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	helpStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	// Tiles
	tileStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorBlank).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	cursorTileStyle = tileStyle.
			Underline(true).
			Foreground(colorHighlight)

	activeRowMarker = lipgloss.NewStyle().Foreground(colorHighlight).Render("›")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1).
			MarginTop(1)
)

// tileColors maps feedback states to tile backgrounds.
var tileColors = map[solver.CellState]lipgloss.Color{
	solver.Unknown: colorBlank,
	solver.Green:   colorGreen,
	solver.Yellow:  colorYellow,
	solver.Gray:    colorGray,
}

func tileFor(state solver.CellState, cursor bool) lipgloss.Style {
	base := tileStyle
	if cursor {
		base = cursorTileStyle
	}
	return base.Background(tileColors[state])
}
