// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/solver"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

// maxListed caps how many words of each list are shown.
const maxListed = 60

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("app.title")))
	b.WriteString("\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(m.resultView())
	if m.status != "" {
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return docStyle.Render(b.String())
}

func (m model) gridView() string {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		tiles := make([]string, solver.WordLength)
		for j := 0; j < solver.WordLength; j++ {
			letter := "·"
			if r.letters[j] != 0 {
				letter = strings.ToUpper(string(r.letters[j]))
			}
			cursor := i == m.cur && j == m.col
			tiles[j] = tileFor(r.states[j], cursor).Render(letter)
		}
		marker := " "
		if i == m.cur {
			marker = activeRowMarker
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, append([]string{marker + " "}, tiles...)...)
	}
	return strings.Join(lines, "\n")
}

func (m model) resultView() string {
	if m.err != nil {
		if errors.Is(m.err, usecase.ErrWordListUnavailable) {
			return errorStyle.Render(i18n.T("solve.unavailable"))
		}
		return errorStyle.Render(m.err.Error())
	}
	res := m.result
	if res == nil {
		return ""
	}
	if res.Remaining == nil {
		return helpStyle.Render(i18n.T("solve.need_more", m.minLocked(), res.NeedMore))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(i18n.T("solve.remaining", *res.Remaining)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(i18n.T("solve.fresh", len(res.Fresh))))
	b.WriteString("\n" + wordList(res.Fresh))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(i18n.T("solve.used", len(res.Used))))
	b.WriteString("\n" + wordList(res.Used))

	if m.debug {
		var d strings.Builder
		d.WriteString(i18n.T("solve.contradictions") + "\n")
		if len(res.Contradictions) == 0 {
			d.WriteString("  " + i18n.T("solve.none") + "\n")
		}
		for _, c := range res.Contradictions {
			d.WriteString(errorStyle.Render("  "+c.String()) + "\n")
		}
		d.WriteString(i18n.T("solve.constraints") + "\n")
		d.WriteString(describeConstraints(res.Constraints))
		b.WriteString("\n" + panelStyle.Render(strings.TrimRight(d.String(), "\n")))
	}
	return b.String()
}

func (m model) minLocked() int {
	if m.svc.MinLocked > 0 {
		return m.svc.MinLocked
	}
	return solver.DefaultMinLocked
}

func wordList(words []string) string {
	if len(words) == 0 {
		return helpStyle.Render(i18n.T("solve.none"))
	}
	shown := words
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	out := strings.Join(shown, " ")
	if len(words) > len(shown) {
		out += helpStyle.Render(fmt.Sprintf(" … +%d", len(words)-len(shown)))
	}
	return out
}

// describeConstraints renders the derived constraints compactly, e.g.
// "green  c _ _ _ e".
func describeConstraints(c *solver.Constraints) string {
	if c == nil {
		return ""
	}
	var b strings.Builder

	pattern := make([]string, solver.WordLength)
	for i := range pattern {
		pattern[i] = "_"
		if ch, ok := c.Greens[i]; ok {
			pattern[i] = string(ch)
		}
	}
	fmt.Fprintf(&b, "  green   %s\n", strings.Join(pattern, " "))

	var yellows []string
	for ch := byte('a'); ch <= 'z'; ch++ {
		if _, ok := c.Yellows[ch]; !ok {
			continue
		}
		pos := c.Forbidden(ch)
		parts := make([]string, len(pos))
		for i, p := range pos {
			parts[i] = fmt.Sprint(p + 1)
		}
		yellows = append(yellows, fmt.Sprintf("%c≠%s", ch, strings.Join(parts, ",")))
	}
	fmt.Fprintf(&b, "  yellow  %s\n", strings.Join(yellows, " "))
	fmt.Fprintf(&b, "  gray    %s\n", strings.Join(strings.Split(string(c.GrayLetters()), ""), " "))

	var counts []string
	for ch := byte('a'); ch <= 'z'; ch++ {
		mn, hasMin := c.MinCounts[ch]
		mx, hasMax := c.MaxCounts[ch]
		switch {
		case hasMin && hasMax:
			counts = append(counts, fmt.Sprintf("%c:%d..%d", ch, mn, mx))
		case hasMin:
			counts = append(counts, fmt.Sprintf("%c:%d+", ch, mn))
		case hasMax:
			counts = append(counts, fmt.Sprintf("%c:..%d", ch, mx))
		}
	}
	fmt.Fprintf(&b, "  count   %s\n", strings.Join(counts, " "))
	return b.String()
}
