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

// Package match plays a single game of Breakthrough between two agents.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/pkg/agent"
	"laptudirm.com/x/breakthrough/pkg/game"
)

// DefaultMaxPlies stops runaway games.
const DefaultMaxPlies = 200

var ErrIllegalMove = errors.New("match: illegal move")

type Config struct {
	// Agents[0] plays First, Agents[1] plays Second.
	Agents [2]agent.Agent

	// Maximum number of plies before the match is stopped. Zero means
	// DefaultMaxPlies.
	MaxPlies int

	// Time an agent is given for each move. Zero means no limit besides
	// the one of the match's context.
	MoveTimeout time.Duration
}

// Record is everything which happened during a match.
type Record struct {
	Result Result
	Reason string

	// Err is the error which stopped an Incomplete match, if any.
	Err error

	// Moves holds the notation of every move played. Boards holds the
	// starting position followed by the position after each move.
	Moves  []string
	Boards []string

	Start    time.Time
	Duration time.Duration
}

// Run plays a match with the given config. It never fails: agent errors
// and illegal moves stop the match and are reported in the Record.
func Run(ctx context.Context, config *Config) Record {
	maxPlies := config.MaxPlies
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}

	record := Record{Start: time.Now()}

	g := game.NewGame()
	record.Boards = append(record.Boards, g.Board().String())

	for !g.Over() {
		if g.Plies() >= maxPlies {
			record.Result, record.Reason = Incomplete, ByPlyCap
			return finish(record)
		}

		agentToMove := config.Agents[sideIndex(g.Turn())]

		move, err := ask(ctx, agentToMove, g, config.MoveTimeout)
		if err != nil {
			record.Result, record.Reason, record.Err = Incomplete, ByAgentError, err
			if ctx.Err() != nil {
				record.Reason = ByCancel
			}
			return finish(record)
		}

		if !g.Apply(move) {
			record.Result, record.Reason = Incomplete, ByIllegalMove
			record.Err = fmt.Errorf("%w %s by %s", ErrIllegalMove, move, agentToMove.Name())
			return finish(record)
		}

		logrus.Tracef("(%s)> %s", agentToMove.Name(), move)

		record.Moves = append(record.Moves, move.String())
		record.Boards = append(record.Boards, g.Board().String())
	}

	record.Result, record.Reason = GameWonBy[g.Winner()], g.Reason()
	return finish(record)
}

func finish(record Record) Record {
	record.Duration = time.Since(record.Start)
	return record
}

// ask gets a move from the agent, turning panics and timeouts into errors.
// The agent runs on its own goroutine, so an agent which ignores ctx is
// abandoned once ctx is done instead of blocking the game.
func ask(ctx context.Context, player agent.Agent, g *game.Game, timeout time.Duration) (game.Move, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type reply struct {
		move game.Move
		err  error
	}

	// buffered so that an abandoned agent can still send and exit
	replies := make(chan reply, 1)
	view, legal := agent.NewView(g), g.LegalMoves()

	go func() {
		var r reply
		defer func() {
			if p := recover(); p != nil {
				r.err = fmt.Errorf("panic: %v", p)
			}
			replies <- r
		}()

		r.move, r.err = player.ChooseMove(ctx, view, legal)
	}()

	var move game.Move
	var err error

	select {
	case r := <-replies:
		move, err = r.move, r.err
		if err == nil {
			err = ctx.Err()
		}
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		var agentErr *agent.Error
		if !errors.As(err, &agentErr) {
			err = &agent.Error{Agent: player.Name(), Err: err}
		}
	}

	return move, err
}

func sideIndex(side game.Side) int {
	if side == game.First {
		return 0
	}

	return 1
}
