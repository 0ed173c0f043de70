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

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/breakthrough/internal/util"
	"laptudirm.com/x/breakthrough/pkg/agent"
	"laptudirm.com/x/breakthrough/pkg/archive"
	"laptudirm.com/x/breakthrough/pkg/common"
	"laptudirm.com/x/breakthrough/pkg/env"
	"laptudirm.com/x/breakthrough/pkg/match"
	"laptudirm.com/x/breakthrough/pkg/tournament"
)

func Tournament() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Run a tournament between two agents",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`tournament plays a series of Breakthrough games between two
			agents, swapping their sides every game, and archives the
			results of every game along with a summary of the tournament.

			Agents can be random movers or language models queried over
			the OpenAI or Anthropic APIs. API keys are read from the
			environment or the file given by --env-file.

			Every flag can also be provided in a YAML file passed with
			--config, using the flag's name as the key. Flags provided
			on the command line take precedence over the file.`),
		Example: heredoc.Doc(`
			$ breakthrough tournament --games 10 --player1 random --player2 openai
			$ breakthrough tournament --config tour.yaml --concurrency 4`),

		RunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if err := applyConfigFile(cmd.Flags(), path); err != nil {
					return err
				}
			}

			opts, err := readTournamentFlags(cmd.Flags())
			if err != nil {
				return err
			}

			return runTournament(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntP("games", "g", 1, "Number of games to play")
	flags.String("player1", agent.TypeRandom, "Type of the first agent (random, openai, anthropic)")
	flags.String("player2", agent.TypeRandom, "Type of the second agent (random, openai, anthropic)")
	flags.String("name1", "", "Name of the first agent")
	flags.String("name2", "", "Name of the second agent")
	flags.String("model1", "", "Model used by the first agent")
	flags.String("model2", "", "Model used by the second agent")
	flags.IntP("concurrency", "c", 1, "Number of games to play at once")
	flags.Duration("timeout", 30*time.Second, "Time given to an agent for each move")
	flags.Int("max-plies", match.DefaultMaxPlies, "Plies after which a game is stopped")
	flags.String("data-dir", common.DataDirectory, "Directory the results are archived in")
	flags.String("log-dir", common.LogDirectory, "Directory the summary and logs are written to")
	flags.String("format", archive.FormatYAML, "Format of the archived results (yaml, json)")
	flags.String("redis-url", "", "Also archive the results to this redis server")
	flags.String("env-file", common.EnvFile, "File to read API keys from")
	flags.String("config", "", "YAML file with default values for these flags")
	flags.Uint64("seed", 0, "Seed of random agents (0 picks one from the clock)")

	return cmd
}

type tournamentOptions struct {
	Games       int
	Agents      [2]agent.Config
	Concurrency int
	Timeout     time.Duration
	MaxPlies    int
	DataDir     string
	LogDir      string
	Format      string
	RedisURL    string
	EnvFile     string
}

// applyConfigFile sets every flag found in the YAML file at path which was
// not provided on the command line.
func applyConfigFile(flags *pflag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	for name, value := range values {
		flag := flags.Lookup(name)
		if flag == nil || name == "config" {
			return fmt.Errorf("config %s: unknown key %s", path, name)
		}

		if flag.Changed {
			continue
		}

		if err := flags.Set(name, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, name, err)
		}
	}

	return nil
}

func readTournamentFlags(flags *pflag.FlagSet) (tournamentOptions, error) {
	var opts tournamentOptions

	str := func(name string) string {
		value, _ := flags.GetString(name)
		return value
	}

	opts.Games, _ = flags.GetInt("games")
	opts.Concurrency, _ = flags.GetInt("concurrency")
	opts.Timeout, _ = flags.GetDuration("timeout")
	opts.MaxPlies, _ = flags.GetInt("max-plies")
	opts.DataDir, opts.LogDir = str("data-dir"), str("log-dir")
	opts.Format, opts.RedisURL, opts.EnvFile = str("format"), str("redis-url"), str("env-file")

	if opts.Games < 0 {
		return opts, fmt.Errorf("tournament: --games must not be negative")
	}

	switch opts.Format {
	case archive.FormatYAML, archive.FormatJSON:
	default:
		return opts, fmt.Errorf("tournament: unknown --format %s", opts.Format)
	}

	seed, _ := flags.GetUint64("seed")
	for i := range opts.Agents {
		n := fmt.Sprint(i + 1)

		config := agent.Config{
			Type:  str("player" + n),
			Name:  str("name" + n),
			Model: str("model" + n),
		}

		if config.Name == "" {
			config.Name = agent.DefaultName(config.Type, i+1)
		}

		if seed != 0 {
			config.Seed = seed + uint64(i)
		}

		opts.Agents[i] = config
	}

	return opts, nil
}

func runTournament(cmd *cobra.Command, opts tournamentOptions) error {
	logs, err := util.TeeLog(opts.LogDir)
	if err != nil {
		return err
	}
	defer logs.Close()

	cfg, err := env.Load(opts.EnvFile)
	if err != nil {
		return err
	}

	var agents [2]agent.Agent
	for i, config := range opts.Agents {
		if agents[i], err = agent.New(config, cfg.Keys()); err != nil {
			return err
		}
	}

	tour, err := tournament.NewTournament(tournament.Config{
		Agents:      agents,
		Games:       opts.Games,
		Concurrency: opts.Concurrency,
		MaxPlies:    opts.MaxPlies,
		MoveTimeout: opts.Timeout,
	})
	if err != nil {
		return err
	}
	tour.Output = cmd.OutOrStdout()

	// connect to redis before the games so that a bad url fails fast
	sinks := archive.MultiSink{
		&archive.FileSink{Dir: opts.DataDir, Format: opts.Format},
		&archive.SummarySink{Dir: opts.LogDir},
	}

	redisURL := opts.RedisURL
	if redisURL == "" {
		redisURL = cfg.RedisURL
	}

	if redisURL != "" {
		util.StartSpinner("Connecting to redis")
		redisSink, err := archive.NewRedisSink(cmd.Context(), redisURL)
		util.PauseSpinner()
		if err != nil {
			return err
		}

		defer redisSink.Close()
		sinks = append(sinks, redisSink)
	}

	logrus.Infof(
		"Tournament %s: %s vs %s, %d games",
		tour.ID(), agents[0].Name(), agents[1].Name(), opts.Games,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	summary, runErr := tour.Run(ctx)
	if runErr != nil {
		logrus.Warnf("Tournament interrupted: %v", runErr)
	}

	record := archive.NewRecord(tour)

	util.StartSpinner("Saving results")
	err = sinks.Write(cmd.Context(), record)
	util.PauseSpinner()
	if err != nil {
		return err
	}

	if err := archive.WriteSummary(cmd.OutOrStdout(), record, summary); err != nil {
		return err
	}

	return runErr
}
