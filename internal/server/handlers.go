// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/solver"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

const maxRequestBody = 64 << 10

type pageData struct {
	Title       string
	User        string
	AuthEnabled bool
	Error       string
	Notice      string
}

type cellView struct {
	Index  int
	Letter string
	State  string
}

type rowView struct {
	Index int
	Word  string
	Cells []cellView
}

type resultView struct {
	MinLocked      int
	NeedMore       int
	Solved         bool
	Remaining      int
	Fresh          []string
	Used           []string
	Debug          bool
	Constraints    string
	Contradictions []solver.Contradiction
}

type solvePageData struct {
	pageData
	Rows      []rowView
	MinLocked int
	Debug     bool
	Result    *resultView
}

func (s *Server) page(r *http.Request, title string) pageData {
	user := userFrom(r.Context())
	if user == anonymous && !s.cfg.AuthEnabled {
		user = ""
	}
	return pageData{Title: title, User: user, AuthEnabled: s.cfg.AuthEnabled}
}

func (s *Server) maxGuesses() int {
	if s.solver.MaxGuesses <= 0 {
		return solver.DefaultMaxGuesses
	}
	return s.solver.MaxGuesses
}

func (s *Server) minLocked() int {
	if s.solver.MinLocked <= 0 {
		return solver.DefaultMinLocked
	}
	return s.solver.MinLocked
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/solve", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) emptyRows() []rowView {
	rows := make([]rowView, s.maxGuesses())
	for i := range rows {
		rows[i] = newRow(i, "", nil)
	}
	return rows
}

func newRow(i int, word string, states []string) rowView {
	row := rowView{Index: i, Word: word, Cells: make([]cellView, solver.WordLength)}
	for j := range row.Cells {
		c := cellView{Index: j, State: solver.Unknown.String()}
		if j < len(word) {
			c.Letter = strings.ToUpper(word[j : j+1])
		}
		if j < len(states) {
			if st, ok := solver.ParseCellState(states[j]); ok {
				c.State = st.String()
			}
		}
		row.Cells[j] = c
	}
	return row
}

func (s *Server) handleSolvePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "solve.tmpl", solvePageData{
		pageData:  s.page(r, i18n.T("app.title")),
		Rows:      s.emptyRows(),
		MinLocked: s.minLocked(),
	})
}

// handleSolveSubmit accepts either the JSON body sent by the page script,
// answered with the results fragment, or a plain form post, answered with
// the whole page.
func (s *Server) handleSolveSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req usecase.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		res, status, err := s.solve(r, req)
		if err != nil {
			http.Error(w, i18n.T("solve.unavailable"), status)
			return
		}
		s.render(w, http.StatusOK, "results", s.resultView(res, req.Debug))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req, rows := s.parseSolveForm(r)
	data := solvePageData{
		pageData:  s.page(r, i18n.T("app.title")),
		Rows:      rows,
		MinLocked: s.minLocked(),
		Debug:     req.Debug,
	}
	res, status, err := s.solve(r, req)
	if err != nil {
		data.Error = i18n.T("solve.unavailable")
		s.render(w, status, "solve.tmpl", data)
		return
	}
	data.Result = s.resultView(res, req.Debug)
	s.render(w, http.StatusOK, "solve.tmpl", data)
}

func (s *Server) parseSolveForm(r *http.Request) (usecase.Request, []rowView) {
	req := usecase.Request{Debug: r.PostFormValue("debug") != ""}
	rows := make([]rowView, s.maxGuesses())
	for i := range rows {
		word := solver.NormalizeWord(r.PostFormValue(fmt.Sprintf("word%d", i)))
		states := make([]string, solver.WordLength)
		for j := range states {
			states[j] = r.PostFormValue(fmt.Sprintf("state%d_%d", i, j))
			if states[j] == "" {
				states[j] = solver.Unknown.String()
			}
		}
		rows[i] = newRow(i, word, states)
		if word != "" {
			req.Guesses = append(req.Guesses, solver.RawGuess{Word: word, States: states})
		}
	}
	return req, rows
}

func (s *Server) handleAPISolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req usecase.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error(), RequestID: requestIDFrom(r.Context())})
		return
	}
	res, status, err := s.solve(r, req)
	if err != nil {
		writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestIDFrom(r.Context())})
		return
	}
	writeJSON(w, http.StatusOK, usecase.NewResponse(res, req.Debug))
}

// solve runs the use case and logs a solver_run event when a deduction was
// actually performed. The returned status is meaningful only with an error.
func (s *Server) solve(r *http.Request, req usecase.Request) (*usecase.Result, int, error) {
	res, err := s.solver.Solve(r.Context(), req)
	if err != nil {
		logging.Errorf("solve failed: %v", err)
		if errors.Is(err, usecase.ErrWordListUnavailable) {
			return nil, http.StatusServiceUnavailable, err
		}
		return nil, http.StatusInternalServerError, err
	}
	if res.Remaining != nil {
		logging.Event("solver_run",
			"type", "solver",
			"request_id", requestIDFrom(r.Context()),
			"ip", s.clientIP(r),
			"user", userFrom(r.Context()),
			"locked_guesses", res.Locked,
			"remaining_candidates", *res.Remaining,
			"words_checked", res.Stats.WordsChecked,
			"debug", req.Debug,
		)
	}
	return res, http.StatusOK, nil
}

func (s *Server) resultView(res *usecase.Result, debug bool) *resultView {
	v := &resultView{MinLocked: s.minLocked(), NeedMore: res.NeedMore, Fresh: res.Fresh, Used: res.Used}
	if res.Remaining == nil {
		return v
	}
	v.Solved = true
	v.Remaining = *res.Remaining
	if debug {
		v.Debug = true
		v.Contradictions = res.Contradictions
		if res.Constraints != nil {
			if b, err := json.MarshalIndent(res.Constraints, "", "  "); err == nil {
				v.Constraints = string(b)
			}
		}
	}
	return v
}
