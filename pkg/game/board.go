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
	"strconv"
	"strings"
)

// Size is the number of rows and columns of a Breakthrough board.
const Size = 8

// Side represents one of the two players of a game. The zero value, NoSide,
// marks an empty square or the absence of a winner.
type Side uint8

const (
	NoSide Side = iota
	First       // historically White, starts on rows 6 and 7
	Second      // historically Black, starts on rows 0 and 1
)

// Other returns the opponent of the given side.
func (side Side) Other() Side {
	switch side {
	case First:
		return Second
	case Second:
		return First
	default:
		return NoSide
	}
}

// Forward is the row delta of a forward step for the given side.
func (side Side) Forward() int {
	if side == First {
		return -1
	}

	return +1
}

// Goal is the row which the given side needs to reach to win the game,
// i.e. its opponent's back rank.
func (side Side) Goal() int {
	if side == First {
		return 0
	}

	return Size - 1
}

func (side Side) String() string {
	switch side {
	case First:
		return "FIRST"
	case Second:
		return "SECOND"
	default:
		return "NONE"
	}
}

// Symbol is the one letter representation of a piece owned by side.
func (side Side) Symbol() string {
	switch side {
	case First:
		return "W"
	case Second:
		return "B"
	default:
		return " "
	}
}

// Square is a (row, col) coordinate on the board. Row 0 is the top of the
// board (Second's back rank), col 0 is the a-file.
type Square struct {
	Row, Col int
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// String returns the square in notation form, like e2.
func (sq Square) String() string {
	return string(rune('a'+sq.Col)) + strconv.Itoa(Size-sq.Row)
}

// Board is a Breakthrough board. Each square holds the Side owning the
// piece on it, or NoSide if it is empty. Board is a value type: assigning
// it copies every square.
type Board struct {
	grid [Size][Size]Side
}

// NewBoard returns a board set up in the starting position.
func NewBoard() *Board {
	var board Board
	for col := 0; col < Size; col++ {
		board.grid[0][col] = Second
		board.grid[1][col] = Second
		board.grid[Size-2][col] = First
		board.grid[Size-1][col] = First
	}

	return &board
}

// EmptyBoard returns a board with no pieces on it.
func EmptyBoard() *Board {
	return &Board{}
}

// Get returns the owner of the piece on the given square. Off board
// squares are always empty.
func (board *Board) Get(sq Square) Side {
	if !sq.Valid() {
		return NoSide
	}

	return board.grid[sq.Row][sq.Col]
}

// Set puts a piece of the given side on the square, or clears it if side
// is NoSide. Setting an off board square does nothing.
func (board *Board) Set(sq Square, side Side) {
	if sq.Valid() {
		board.grid[sq.Row][sq.Col] = side
	}
}

// Copy returns an independent copy of the board.
func (board *Board) Copy() *Board {
	clone := *board
	return &clone
}

// Count returns the number of pieces the given side has on the board.
func (board *Board) Count(side Side) int {
	n := 0
	for row := range board.grid {
		for _, owner := range board.grid[row] {
			if owner == side {
				n++
			}
		}
	}

	return n
}

const (
	fileLabels = "  a b c d e f g h"
	rankBorder = "  +-+-+-+-+-+-+-+-+"
)

// String renders the board with file and rank labels on its edges.
func (board *Board) String() string {
	var b strings.Builder

	b.WriteString(fileLabels + "\n")
	b.WriteString(rankBorder + "\n")

	for row := 0; row < Size; row++ {
		rank := strconv.Itoa(Size - row)
		b.WriteString(rank + "|")
		for col := 0; col < Size; col++ {
			b.WriteString(board.grid[row][col].Symbol() + "|")
		}
		b.WriteString(rank + "\n")
		b.WriteString(rankBorder + "\n")
	}

	b.WriteString(fileLabels)
	return b.String()
}
