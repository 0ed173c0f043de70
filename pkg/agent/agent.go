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

// Package agent implements the players of a Breakthrough game. An Agent is
// anything which can pick a move out of the legal moves of a position.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"laptudirm.com/x/breakthrough/pkg/game"
)

// Agent chooses moves for one side of a game.
type Agent interface {
	// Name is the name under which the agent's results are recorded.
	Name() string

	// ChooseMove returns the agent's move for the given position. The
	// returned move should be one of legal; the caller verifies it.
	ChooseMove(ctx context.Context, view View, legal []game.Move) (game.Move, error)
}

// View is a read-only snapshot of a game given to an agent.
type View struct {
	Side  game.Side
	Board *game.Board
	Plies int
}

// NewView creates a View of the current position of g.
func NewView(g *game.Game) View {
	return View{
		Side:  g.Turn(),
		Board: g.Board(),
		Plies: g.Plies(),
	}
}

var ErrNoMoves = errors.New("agent: no legal moves available")

// Error is returned when an agent fails to produce a move.
type Error struct {
	Agent string
	Err   error
}

func (err *Error) Error() string {
	return fmt.Sprintf("agent %s: %v", err.Agent, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Notations converts the given moves into their notations.
func Notations(moves []game.Move) []string {
	notations := make([]string, len(moves))
	for i, move := range moves {
		notations[i] = move.String()
	}

	return notations
}

// Find returns the move in legal with the same notation as the given one,
// ignoring case.
func Find(legal []game.Move, notation string) (game.Move, bool) {
	for _, move := range legal {
		if strings.EqualFold(move.String(), notation) {
			return move, true
		}
	}

	return game.Move{}, false
}
