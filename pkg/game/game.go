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

import "fmt"

// Reasons for which a game can end.
const (
	ByBreakthrough = "Breakthrough"
	ByStalemate    = "Stalemate"
)

// Game is a single game of Breakthrough. A Game is not safe for concurrent
// use; each game should be driven by a single goroutine.
type Game struct {
	board   *Board
	turn    Side
	history []Move

	over   bool
	winner Side
	reason string
}

// NewGame returns a game in the starting position with First to move.
func NewGame() *Game {
	return NewGameFrom(NewBoard(), First)
}

// NewGameFrom returns a game starting from the given position. The board
// is copied. The game is over immediately if turn has no legal moves.
func NewGameFrom(board *Board, turn Side) *Game {
	game := &Game{
		board: board.Copy(),
		turn:  turn,
	}

	if len(game.LegalMoves()) == 0 {
		game.over, game.reason = true, ByStalemate
	}

	return game
}

// Board returns a copy of the current position.
func (game *Game) Board() *Board { return game.board.Copy() }

// Turn returns the side to move.
func (game *Game) Turn() Side { return game.turn }

// Over reports whether the game has ended.
func (game *Game) Over() bool { return game.over }

// Winner returns the side which won the game. It returns NoSide if the
// game is still in progress or was drawn.
func (game *Game) Winner() Side { return game.winner }

// Reason returns why the game ended, or "" if it hasn't.
func (game *Game) Reason() string { return game.reason }

// Plies returns the number of moves played so far.
func (game *Game) Plies() int { return len(game.history) }

// History returns a copy of the moves played so far.
func (game *Game) History() []Move {
	return append([]Move(nil), game.history...)
}

// LegalMoves generates every legal move of the side to move. Squares are
// scanned in row-major order; for every piece the forward move comes first,
// followed by the left and right diagonal captures.
func (game *Game) LegalMoves() []Move {
	if game.over {
		return nil
	}

	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Square{row, col}
			if game.board.Get(from) != game.turn {
				continue
			}

			moves = game.appendPieceMoves(moves, from)
		}
	}

	return moves
}

func (game *Game) appendPieceMoves(moves []Move, from Square) []Move {
	us := game.board.Get(from)
	row := from.Row + us.Forward()

	if ahead := (Square{row, from.Col}); ahead.Valid() && game.board.Get(ahead) == NoSide {
		moves = append(moves, Move{From: from, To: ahead})
	}

	for _, delta := range [2]int{-1, +1} {
		target := Square{row, from.Col + delta}
		if target.Valid() && game.board.Get(target) == us.Other() {
			moves = append(moves, Move{From: from, To: target, Capture: true})
		}
	}

	return moves
}

// Apply plays the given move if it is legal, returning false without
// touching the game otherwise. Once the game is over every move is
// rejected.
func (game *Game) Apply(move Move) bool {
	legal, found := Move{}, false
	for _, candidate := range game.LegalMoves() {
		if candidate.Equal(move) {
			legal, found = candidate, true
			break
		}
	}

	if !found {
		return false
	}

	us := game.board.Get(legal.From)
	game.board.Set(legal.From, NoSide)
	game.board.Set(legal.To, us)
	game.history = append(game.history, legal)

	if legal.To.Row == us.Goal() {
		game.over, game.winner, game.reason = true, us, ByBreakthrough
		return true
	}

	game.turn = game.turn.Other()

	// A side which can't move doesn't lose, the game is drawn instead.
	if len(game.LegalMoves()) == 0 {
		game.over, game.reason = true, ByStalemate
	}

	return true
}

// Copy returns an independent copy of the game.
func (game *Game) Copy() *Game {
	clone := *game
	clone.board = game.board.Copy()
	clone.history = game.History()
	return &clone
}

// Status returns a human readable description of the game's state.
func (game *Game) Status() string {
	switch {
	case !game.over:
		return fmt.Sprintf("Current player: %s", game.turn)
	case game.winner != NoSide:
		return fmt.Sprintf("Game Over. %s wins!", game.winner)
	default:
		return "Game Over. Draw!"
	}
}

func (game *Game) String() string {
	return game.board.String() + "\n\n" + game.Status()
}
