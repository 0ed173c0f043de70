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

package agent

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"laptudirm.com/x/breakthrough/pkg/game"
)

// Random plays a uniformly random legal move.
type Random struct {
	name string

	// The same agent may play several games concurrently.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a random agent seeded with the given seed.
func NewRandom(name string, seed uint64) *Random {
	return &Random{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (agent *Random) Name() string { return agent.name }

func (agent *Random) ChooseMove(ctx context.Context, view View, legal []game.Move) (game.Move, error) {
	if len(legal) == 0 {
		return game.Move{}, &Error{Agent: agent.name, Err: ErrNoMoves}
	}

	if err := ctx.Err(); err != nil {
		return game.Move{}, &Error{Agent: agent.name, Err: err}
	}

	agent.mu.Lock()
	move := legal[agent.rng.Intn(len(legal))]
	agent.mu.Unlock()

	logrus.Tracef("(%s)> %s", agent.name, move)
	return move, nil
}
