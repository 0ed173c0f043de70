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

package match

import "laptudirm.com/x/breakthrough/pkg/game"

// Result represents the result of a single match.
type Result int

const (
	// Incomplete games were stopped before the rules decided them: the ply
	// cap was hit, an agent failed, or the match was cancelled.
	Incomplete Result = iota
	FirstWins
	SecondWins
	Draw
)

// Reasons for which a match can end, besides the game's own reasons.
const (
	ByPlyCap      = "Ply cap"
	ByAgentError  = "Agent error"
	ByIllegalMove = "Illegal move"
	ByCancel      = "Cancelled"
)

// GameWonBy maps the winning side to the match's Result.
var GameWonBy = map[game.Side]Result{
	game.First:  FirstWins,
	game.Second: SecondWins,
	game.NoSide: Draw,
}

// Winner returns the index of the agent which won, or -1 if nobody did.
func (result Result) Winner() int {
	switch result {
	case FirstWins:
		return 0
	case SecondWins:
		return 1
	default:
		return -1
	}
}

// String returns a string representation of the given Result.
func (result Result) String() string {
	switch result {
	case FirstWins:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case SecondWins:
		return "0-1"
	default:
		return "*"
	}
}
