// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/solver"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve --guess WORD=PATTERN ...",
		Short: "Solve from the command line",
		Long: `Prints the remaining candidates for the given guesses. Each guess is the
word followed by its feedback pattern, one character per letter:

  g  green (right letter, right place)
  y  yellow (in the word, elsewhere)
  x  gray (no further copies; "b", "-" and "." also work)
  ?  not coloured yet

Example:
  wordle-assistant solve -g crane=xxgxy -g shame=xxgxy -g pales=xggxx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, _ := cmd.Flags().GetStringArray("guess")
			debug, _ := cmd.Flags().GetBool("debug")
			asJSON, _ := cmd.Flags().GetBool("json")

			req := usecase.Request{Debug: debug}
			for _, s := range specs {
				g, err := parseGuessSpec(s)
				if err != nil {
					return err
				}
				req.Guesses = append(req.Guesses, g)
			}

			res, err := newSolveService().Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(usecase.NewResponse(res, debug))
			}
			printResult(cmd.OutOrStdout(), res, minLocked())
			return nil
		},
	}
	cmd.Flags().StringArrayP("guess", "g", nil, "Guess as WORD=PATTERN, repeatable, in the order played")
	cmd.Flags().Bool("debug", false, "Include derived constraints and contradictions")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

// parseGuessSpec parses "crane=gxyxx".
func parseGuessSpec(spec string) (solver.RawGuess, error) {
	word, pattern, ok := strings.Cut(spec, "=")
	if !ok {
		return solver.RawGuess{}, fmt.Errorf("guess %q: expected WORD=PATTERN", spec)
	}
	word = solver.NormalizeWord(word)
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if !solver.ValidWord(word) {
		return solver.RawGuess{}, fmt.Errorf("guess %q: word must be five letters a-z", spec)
	}
	if len(pattern) != solver.WordLength {
		return solver.RawGuess{}, fmt.Errorf("guess %q: pattern must have %d characters", spec, solver.WordLength)
	}
	states := make([]string, solver.WordLength)
	for i := 0; i < solver.WordLength; i++ {
		var st solver.CellState
		switch pattern[i] {
		case 'g':
			st = solver.Green
		case 'y':
			st = solver.Yellow
		case 'x', 'b', '-', '.':
			st = solver.Gray
		case '?', '_':
			st = solver.Unknown
		default:
			return solver.RawGuess{}, fmt.Errorf("guess %q: unknown feedback %q", spec, pattern[i])
		}
		states[i] = st.String()
	}
	return solver.RawGuess{Word: word, States: states}, nil
}

func minLocked() int {
	if appConfig.Solver.MinLocked > 0 {
		return appConfig.Solver.MinLocked
	}
	return solver.DefaultMinLocked
}

func printResult(w io.Writer, res *usecase.Result, threshold int) {
	if res.Remaining == nil {
		fmt.Fprintln(w, i18n.T("solve.need_more", threshold, res.NeedMore))
		return
	}
	fmt.Fprintln(w, i18n.T("solve.remaining", *res.Remaining))
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("solve.fresh", len(res.Fresh)))
	printWords(w, res.Fresh)
	fmt.Fprintln(w, i18n.T("solve.used", len(res.Used)))
	printWords(w, res.Used)

	if res.Constraints == nil {
		return
	}
	fmt.Fprintln(w, i18n.T("solve.contradictions"))
	if len(res.Contradictions) == 0 {
		fmt.Fprintf(w, "  %s\n", i18n.T("solve.none"))
	}
	for _, c := range res.Contradictions {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.T("solve.constraints"))
	if b, err := json.MarshalIndent(res.Constraints, "  ", "  "); err == nil {
		fmt.Fprintf(w, "  %s\n", b)
	}
}

// printWords prints words ten to a line.
func printWords(w io.Writer, words []string) {
	if len(words) == 0 {
		fmt.Fprintf(w, "  %s\n\n", i18n.T("solve.none"))
		return
	}
	for i := 0; i < len(words); i += 10 {
		end := min(i+10, len(words))
		fmt.Fprintf(w, "  %s\n", strings.Join(words[i:end], " "))
	}
	fmt.Fprintln(w)
}
