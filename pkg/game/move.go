// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the source and target squares in move notation.
const Delimiter = " to "

// ErrInvalidNotation is the error wrapped by every ParseError.
var ErrInvalidNotation = errors.New("invalid move notation")

// ParseError is returned when a string can't be parsed as a move or square.
type ParseError struct {
	Input  string
	Reason string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse move %q: %s", err.Input, err.Reason)
}

func (err *ParseError) Unwrap() error {
	return ErrInvalidNotation
}

// Move moves a piece From one square To another. Capture is informational:
// two moves are the same move if their squares are equal.
type Move struct {
	From, To Square
	Capture  bool
}

// Equal reports whether the two moves join the same pair of squares.
func (move Move) Equal(other Move) bool {
	return move.From == other.From && move.To == other.To
}

// String returns the move in notation form, like "e2 to e3".
func (move Move) String() string {
	return move.From.String() + Delimiter + move.To.String()
}

// ParseMove parses a move in "<file><rank> to <file><rank>" notation. The
// notation must match exactly, surrounding whitespace included. The returned
// move is never marked as a capture.
func ParseMove(notation string) (Move, error) {
	parts := strings.Split(notation, Delimiter)
	switch {
	case len(parts) < 2:
		return Move{}, &ParseError{Input: notation, Reason: "missing delimiter"}
	case len(parts) > 2:
		return Move{}, &ParseError{Input: notation, Reason: "duplicate delimiter"}
	}

	from, err := parseSquare(notation, parts[0])
	if err != nil {
		return Move{}, err
	}

	to, err := parseSquare(notation, parts[1])
	if err != nil {
		return Move{}, err
	}

	return Move{From: from, To: to}, nil
}

// ParseSquare parses a square in "<file><rank>" notation, like e2.
func ParseSquare(notation string) (Square, error) {
	return parseSquare(notation, notation)
}

func parseSquare(input, str string) (Square, error) {
	if len(str) != 2 {
		return Square{}, &ParseError{Input: input, Reason: fmt.Sprintf("bad square %q", str)}
	}

	file, rank := str[0], str[1]
	if file < 'a' || file >= 'a'+Size {
		return Square{}, &ParseError{Input: input, Reason: fmt.Sprintf("bad file %q", file)}
	}

	if rank < '1' || rank >= '1'+Size {
		return Square{}, &ParseError{Input: input, Reason: fmt.Sprintf("bad rank %q", rank)}
	}

	return Square{
		Row: Size - int(rank-'0'),
		Col: int(file - 'a'),
	}, nil
}
