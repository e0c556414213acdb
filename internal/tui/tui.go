// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui is the interactive terminal solver. Guesses are typed into a
// grid of tiles, each tile is coloured with the feedback the game showed and
// the candidate list is recomputed after every change.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/solver"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

// solveTimeout bounds a single recomputation.
const solveTimeout = 10 * time.Second

// row is one guess line of the grid.
type row struct {
	letters [solver.WordLength]byte
	states  [solver.WordLength]solver.CellState
}

func (r row) word() string {
	var b strings.Builder
	for _, c := range r.letters {
		if c == 0 {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (r row) length() int { return len(r.word()) }

func (r row) empty() bool { return r.letters[0] == 0 }

func (r row) raw() solver.RawGuess {
	g := solver.RawGuess{Word: r.word(), States: make([]string, solver.WordLength)}
	for i, s := range r.states {
		g.States[i] = s.String()
	}
	return g
}

// resultMsg carries the outcome of a background solve. seq lets stale
// results from earlier edits be dropped.
type resultMsg struct {
	seq    int
	result *usecase.Result
	err    error
}

// model is the bubbletea model of the solver screen.
type model struct {
	svc  *usecase.Service
	rows []row
	cur  int // active row
	col  int // cursor column within the active row

	debug  bool
	seq    int
	result *usecase.Result
	err    error
	status string
	failed bool

	// copy writes to the system clipboard; tests replace it.
	copy func(string) error

	keys  keyMap
	help  help.Model
	width int
}

func newModel(svc *usecase.Service) model {
	n := svc.MaxGuesses
	if n <= 0 {
		n = solver.DefaultMaxGuesses
	}
	return model{
		svc:  svc,
		rows: make([]row, n),
		copy: clipboard.WriteAll,
		keys: newKeyMap(),
		help: help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return m.solveCmd()
}

func (m model) request() usecase.Request {
	req := usecase.Request{Debug: m.debug}
	for _, r := range m.rows {
		if r.empty() {
			continue
		}
		req.Guesses = append(req.Guesses, r.raw())
	}
	return req
}

// solveCmd recomputes the result for the current grid in the background.
func (m model) solveCmd() tea.Cmd {
	svc, req, seq := m.svc, m.request(), m.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
		defer cancel()
		res, err := svc.Solve(ctx, req)
		return resultMsg{seq: seq, result: res, err: err}
	}
}

// changed bumps the sequence number and schedules a recomputation.
func (m *model) changed() tea.Cmd {
	m.seq++
	m.status = ""
	return m.solveCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case resultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.result, m.err = msg.result, msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := &m.rows[m.cur]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Debug):
		m.debug = !m.debug
		return m, m.changed()

	case key.Matches(msg, m.keys.Copy):
		m.copyFresh()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cur < len(m.rows)-1 {
			m.cur++
			m.col = min(m.col, m.rows[m.cur].length())
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cur > 0 {
			m.cur--
			m.col = min(m.col, m.rows[m.cur].length())
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.col < r.length() && m.col < solver.WordLength-1 {
			m.col++
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.backspace()

	case key.Matches(msg, m.keys.Cycle):
		return m.cycle(m.col)

	case key.Matches(msg, m.keys.CycleAt):
		return m.cycle(int(msg.Runes[0] - '1'))

	case key.Matches(msg, m.keys.Type):
		return m.typeLetter(byte(msg.Runes[0]))
	}
	return m, nil
}

// cycle advances the colour of tile i. Empty tiles have no colour.
func (m model) cycle(i int) (tea.Model, tea.Cmd) {
	r := &m.rows[m.cur]
	if i < 0 || i >= solver.WordLength || r.letters[i] == 0 {
		return m, nil
	}
	r.states[i] = r.states[i].Next()
	return m, m.changed()
}

// typeLetter writes ch at the cursor. Cells fill left to right, so a cursor
// past the end of the word appends; on a full row the letter under the
// cursor is replaced.
func (m model) typeLetter(ch byte) (tea.Model, tea.Cmd) {
	r := &m.rows[m.cur]
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	pos := min(m.col, r.length(), solver.WordLength-1)
	r.letters[pos] = ch
	if pos < solver.WordLength-1 {
		m.col = pos + 1
	} else {
		m.col = pos
	}
	return m, m.changed()
}

// backspace deletes the last letter of the active row together with its
// colour. On an empty row it moves to the end of the previous one.
func (m model) backspace() (tea.Model, tea.Cmd) {
	r := &m.rows[m.cur]
	n := r.length()
	if n == 0 {
		if m.cur > 0 {
			m.cur--
			m.col = min(m.rows[m.cur].length(), solver.WordLength-1)
		}
		return m, nil
	}
	r.letters[n-1] = 0
	r.states[n-1] = solver.Unknown
	m.col = n - 1
	return m, m.changed()
}

func (m *model) copyFresh() {
	if m.result == nil || m.result.Remaining == nil || len(m.result.Fresh) == 0 {
		m.status, m.failed = i18n.T("tui.nothing_to_copy"), true
		return
	}
	if err := m.copy(strings.Join(m.result.Fresh, "\n")); err != nil {
		m.status, m.failed = i18n.T("tui.copy_failed", err), true
		return
	}
	m.status, m.failed = i18n.T("tui.copied", len(m.result.Fresh)), false
}

// Run starts the interactive solver and blocks until the user quits.
func Run(svc *usecase.Service) error {
	_, err := tea.NewProgram(newModel(svc), tea.WithAltScreen()).Run()
	return err
}
