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

package tournament

import (
	"fmt"
	"time"

	"laptudirm.com/x/breakthrough/pkg/match"
)

// GameResult is the outcome of a single game of a tournament.
type GameResult struct {
	// 1-based index of the game in the tournament.
	Index int `yaml:"index" json:"index"`

	// Names of the agents playing First and Second.
	First  string `yaml:"first" json:"first"`
	Second string `yaml:"second" json:"second"`

	// Winner and Loser are empty unless the game was decided.
	Winner     string `yaml:"winner,omitempty" json:"winner,omitempty"`
	Loser      string `yaml:"loser,omitempty" json:"loser,omitempty"`
	Draw       bool   `yaml:"draw" json:"draw"`
	Incomplete bool   `yaml:"incomplete" json:"incomplete"`
	Reason     string `yaml:"reason" json:"reason"`
	Error      string `yaml:"error,omitempty" json:"error,omitempty"`

	Moves  []string `yaml:"moves" json:"moves"`
	Boards []string `yaml:"boards" json:"boards"`

	Timestamp time.Time     `yaml:"timestamp" json:"timestamp"`
	Duration  time.Duration `yaml:"duration" json:"duration"`
	MoveCount int           `yaml:"move-count" json:"move_count"`
}

// NewGameResult builds the result of a game from its match record.
func NewGameResult(game *Game, record match.Record) GameResult {
	result := GameResult{
		Index:  game.Index,
		First:  game.Agents[0].Name(),
		Second: game.Agents[1].Name(),
		Reason: record.Reason,

		// never nil, so that archives decode to equal results
		Moves:  append([]string{}, record.Moves...),
		Boards: append([]string{}, record.Boards...),

		Timestamp: record.Start.UTC(),
		Duration:  record.Duration,
		MoveCount: len(record.Moves),
	}

	if record.Err != nil {
		result.Error = record.Err.Error()
	}

	switch record.Result {
	case match.FirstWins:
		result.Winner, result.Loser = result.First, result.Second
	case match.SecondWins:
		result.Winner, result.Loser = result.Second, result.First
	case match.Draw:
		result.Draw = true
	default:
		result.Incomplete = true
	}

	return result
}

// Score returns the score the named agent got in the game: 1 for a win,
// 0.5 for a draw and 0 otherwise.
func (result GameResult) Score(name string) float64 {
	switch {
	case result.Incomplete:
		return 0
	case result.Draw:
		return 0.5
	case result.Winner == name:
		return 1
	default:
		return 0
	}
}

func (result GameResult) String() string {
	switch {
	case result.Incomplete && result.Error != "":
		return fmt.Sprintf("Incomplete by %s (%s)", result.Reason, result.Error)
	case result.Incomplete:
		return fmt.Sprintf("Incomplete by %s", result.Reason)
	case result.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	default:
		return fmt.Sprintf("%s wins by %s", result.Winner, result.Reason)
	}
}
