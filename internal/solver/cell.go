// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

import (
	"fmt"
	"strings"
)

// CellState is the feedback colour of a single letter cell.
type CellState uint8

const (
	// Unknown means the cell has not been coloured yet.
	Unknown CellState = iota
	// Green means the letter is at this position in the answer.
	Green
	// Yellow means the letter is in the answer but not at this position.
	Yellow
	// Gray means the answer holds no more of this letter than the other
	// cells of the same guess already confirm.
	Gray
)

var cellStateNames = [...]string{
	Unknown: "unknown",
	Green:   "green",
	Yellow:  "yellow",
	Gray:    "gray",
}

func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// ParseCellState maps a wire name ("unknown", "green", "yellow", "gray") to
// its CellState. Surrounding whitespace and case are ignored.
func ParseCellState(name string) (CellState, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unknown":
		return Unknown, true
	case "green":
		return Green, true
	case "yellow":
		return Yellow, true
	case "gray":
		return Gray, true
	}
	return Unknown, false
}

// MarshalText implements encoding.TextMarshaler.
func (s CellState) MarshalText() ([]byte, error) {
	if int(s) >= len(cellStateNames) {
		return nil, fmt.Errorf("invalid cell state %d", uint8(s))
	}
	return []byte(cellStateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CellState) UnmarshalText(text []byte) error {
	v, ok := ParseCellState(string(text))
	if !ok {
		return fmt.Errorf("invalid cell state %q", string(text))
	}
	*s = v
	return nil
}

// Next cycles Unknown -> Green -> Yellow -> Gray -> Unknown. Interactive
// front ends use it to step a cell through the colours.
func (s CellState) Next() CellState {
	return (s + 1) % CellState(len(cellStateNames))
}
