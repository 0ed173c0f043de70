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
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/breakthrough/pkg/archive"
	"laptudirm.com/x/breakthrough/pkg/tournament"
)

func Replay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay archive [game]",
		Short: "Show the games of an archived tournament",
		Args:  cobra.RangeArgs(1, 2),
		Long: heredoc.Doc(`replay reads an archived tournament and prints its summary,
			or if a game number is given, every position of that game.

			The archive is a .yaml or .json file written by the tournament
			command. If --redis-url is provided, the archive is instead the
			id of a tournament stored in that redis server.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := loadRecord(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				summary := tournament.ComputeStats([2]string{record.Player1, record.Player2}, record.Results)
				return archive.WriteSummary(out, record, summary)
			}

			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(record.Results) {
				return fmt.Errorf("replay: no game %s in tournament %s", args[1], record.ID)
			}

			writeGame(out, record.Results[n-1])
			return nil
		},
	}

	cmd.Flags().String("redis-url", "", "Read the tournament from this redis server")
	return cmd
}

func loadRecord(cmd *cobra.Command, name string) (archive.Record, error) {
	url, _ := cmd.Flags().GetString("redis-url")
	if url == "" {
		return archive.Load(name)
	}

	sink, err := archive.NewRedisSink(cmd.Context(), url)
	if err != nil {
		return archive.Record{}, err
	}
	defer sink.Close()

	return sink.Read(cmd.Context(), name)
}

func writeGame(w io.Writer, result tournament.GameResult) {
	fmt.Fprintf(w, "Game #%d: %s vs %s\n\n", result.Index, result.First, result.Second)

	for ply, board := range result.Boards {
		if ply == 0 {
			fmt.Fprintln(w, "Starting position:")
		} else if ply <= len(result.Moves) {
			fmt.Fprintf(w, "Ply %d: %s\n", ply, result.Moves[ply-1])
		}

		fmt.Fprintf(w, "%s\n\n", board)
	}

	fmt.Fprintln(w, result)
}
