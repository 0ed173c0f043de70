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

// Package tournament plays a series of Breakthrough games between two
// agents and aggregates their results.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/pkg/agent"
	"laptudirm.com/x/breakthrough/pkg/match"
	"laptudirm.com/x/breakthrough/pkg/stats"
)

type Config struct {
	// The two agents taking part in the tournament.
	Agents [2]agent.Agent

	// Number of games to play.
	Games int

	// Number of games that will be played concurrently.
	Concurrency int

	// Passed on to every match.
	MaxPlies    int
	MoveTimeout time.Duration
}

func NewTournament(config Config) (*Tournament, error) {
	if config.Games < 0 {
		return nil, fmt.Errorf("new tour: negative game count %d", config.Games)
	}

	for i, player := range config.Agents {
		if player == nil {
			return nil, fmt.Errorf("new tour: missing agent %d", i+1)
		}
	}

	if config.Agents[0].Name() == config.Agents[1].Name() {
		return nil, fmt.Errorf("new tour: both agents are named %s", config.Agents[0].Name())
	}

	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	return &Tournament{
		Config: config,
		Output: os.Stdout,

		id:      NewID(time.Now()),
		results: make([]GameResult, config.Games),
	}, nil
}

type Tournament struct {
	Config Config

	// Output receives the periodic score reports.
	Output io.Writer

	id      string
	start   time.Time
	results []GameResult

	// running score of each agent, only touched by ResultHandler
	scores [2]struct {
		Wins, Losses, Draws int
	}
}

// NewID returns a tournament id for the given time, like
// 20240102_150405-1a2b3c4d.
func NewID(t time.Time) string {
	return t.Format("20060102_150405") + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (tour *Tournament) ID() string {
	return tour.id
}

// Start returns the time at which the tournament was run.
func (tour *Tournament) Start() time.Time {
	return tour.start
}

// Players returns the names of the two agents.
func (tour *Tournament) Players() [2]string {
	return [2]string{tour.Config.Agents[0].Name(), tour.Config.Agents[1].Name()}
}

// Results returns the results of every game, ordered by game index.
func (tour *Tournament) Results() []GameResult {
	return append([]GameResult{}, tour.results...)
}

// Run plays every game of the tournament and returns the aggregated stats.
// Agent failures only abort the game they happen in. If ctx is cancelled,
// the remaining games are recorded as cancelled and ctx's error is returned
// along with the stats of the results.
func (tour *Tournament) Run(ctx context.Context) (Stats, error) {
	tour.start = time.Now()

	games := make(chan *Game)
	finished := make(chan int)
	complete := make(chan bool)

	go tour.ResultHandler(finished, complete)

	var wg sync.WaitGroup
	for i := 0; i < tour.Config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tour.Thread(ctx, games, finished)
		}()
	}

	for i := 1; i <= tour.Config.Games; i++ {
		games <- tour.NewGame(i)
	}

	close(games)
	wg.Wait()

	close(finished)
	<-complete

	summary := ComputeStats(tour.Players(), tour.results)
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run tour: %w", err)
	}

	return summary, nil
}

// Game is a single game scheduled in a tournament.
type Game struct {
	// 1-based index of the game in the tournament.
	Index int

	// Agents[0] plays First, Agents[1] plays Second.
	Agents [2]agent.Agent
}

// NewGame schedules the game with the given index. The first agent plays
// First in odd games and Second in even ones.
func (tour *Tournament) NewGame(index int) *Game {
	a, b := tour.Config.Agents[0], tour.Config.Agents[1]
	if index%2 == 0 {
		a, b = b, a
	}

	return &Game{Index: index, Agents: [2]agent.Agent{a, b}}
}

func (tour *Tournament) Thread(ctx context.Context, games <-chan *Game, finished chan<- int) {
	for game := range games {
		tour.results[game.Index-1] = tour.RunGame(ctx, game)
		finished <- game.Index - 1
	}
}

func (tour *Tournament) RunGame(ctx context.Context, game *Game) GameResult {
	if ctx.Err() == nil {
		logrus.Infof(
			"\x1b[33mStarting\x1b[0m Game #%d: %s vs %s",
			game.Index,
			game.Agents[0].Name(),
			game.Agents[1].Name(),
		)
	}

	record := match.Run(ctx, &match.Config{
		Agents:      game.Agents,
		MaxPlies:    tour.Config.MaxPlies,
		MoveTimeout: tour.Config.MoveTimeout,
	})

	if record.Err != nil && !errors.Is(record.Err, context.Canceled) {
		logrus.Warnf("Game #%d aborted: %v", game.Index, record.Err)
	}

	return NewGameResult(game, record)
}

func (tour *Tournament) ResultHandler(finished <-chan int, complete chan<- bool) {
	count := 0
	for index := range finished {
		count++

		result := tour.results[index]
		tour.score(result)

		logrus.Infof(
			"\x1b[32mFinished\x1b[0m Game #%d: %s vs %s: %s",
			result.Index,
			result.First,
			result.Second,
			result,
		)

		if count%5 == 0 {
			tour.Report()
		}
	}

	complete <- true
}

func (tour *Tournament) score(result GameResult) {
	players := tour.Players()
	for i := range players {
		switch {
		case result.Incomplete:
		case result.Draw:
			tour.scores[i].Draws++
		case result.Winner == players[i]:
			tour.scores[i].Wins++
		default:
			tour.scores[i].Losses++
		}
	}
}

// Report prints the running score of both agents.
func (tour *Tournament) Report() {
	fmt.Fprintln(tour.Output, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(tour.Output, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(tour.Output, "╠══════════════════════════════════════════════════════════╣")
	for i, name := range tour.Players() {
		score := tour.scores[i]
		elo := stats.Elo(score.Wins, score.Draws, score.Losses)

		fmt.Fprintf(tour.Output,
			"║ %2d. %-15.15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n",
			i+1, name,
			elo.Elo, elo.Error(),
			score.Wins, score.Losses, score.Draws,
			score.Wins+score.Losses+score.Draws)
	}
	fmt.Fprintln(tour.Output, "╚══════════════════════════════════════════════════════════╝")
}
