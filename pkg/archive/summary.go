package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/pkg/common"
	"laptudirm.com/x/breakthrough/pkg/tournament"
)

// WriteSummary writes a human readable summary of a tournament to w.
func WriteSummary(w io.Writer, record Record, summary tournament.Stats) error {
	var b bytes.Buffer

	fmt.Fprintln(&b, "Tournament Summary")
	fmt.Fprintln(&b, "==================")
	fmt.Fprintf(&b, "Tournament ID: %s\n", record.ID)
	fmt.Fprintf(&b, "Timestamp: %s\n\n", record.Timestamp.Format(time.RFC3339))

	fmt.Fprintln(&b, "Players:")
	fmt.Fprintf(&b, "  Player 1: %s\n", record.Player1)
	fmt.Fprintf(&b, "  Player 2: %s\n\n", record.Player2)

	fmt.Fprintln(&b, "Results:")
	fmt.Fprintf(&b, "  %s wins: %d\n", record.Player1, summary.Wins[record.Player1])
	fmt.Fprintf(&b, "  %s wins: %d\n", record.Player2, summary.Wins[record.Player2])
	fmt.Fprintf(&b, "  Draws: %d\n", summary.Draws)
	fmt.Fprintf(&b, "  Incomplete: %d\n", summary.Incomplete)
	fmt.Fprintf(&b, "  Total games: %d\n", summary.TotalGames)
	fmt.Fprintf(&b, "  Elo (%s): %+.0f +/- %.0f\n", record.Player1, summary.Elo.Elo, summary.Elo.Error())
	fmt.Fprintf(&b, "  Pentanomial Elo: %+.0f +/- %.0f\n\n", summary.PentaElo.Elo, summary.PentaElo.Error())

	fmt.Fprintln(&b, "Timing:")
	fmt.Fprintf(&b, "  Total duration: %.2fs\n", summary.TotalDuration.Seconds())
	fmt.Fprintf(&b, "  Avg game duration: %.2fs\n", summary.AverageDuration.Seconds())
	fmt.Fprintf(&b, "  Stddev game duration: %.2fs\n", summary.DurationStdDev.Seconds())
	fmt.Fprintf(&b, "  Avg moves per game: %.1f\n\n", summary.AverageMoves)

	fmt.Fprintln(&b, "Game Details:")
	fmt.Fprintf(&b, "%-6s %-20s %-20s %-8s %-12s\n", "Game", "Winner", "Loser", "Moves", "Duration")
	fmt.Fprintln(&b, strings.Repeat("-", 66))
	for _, result := range record.Results {
		winner, loser := result.Winner, result.Loser
		switch {
		case result.Draw:
			winner, loser = "Draw", "-"
		case result.Incomplete:
			winner, loser = "Incomplete", "-"
		}

		fmt.Fprintf(&b, "%-6d %-20s %-20s %-8d %-12s\n",
			result.Index, winner, loser, result.MoveCount,
			fmt.Sprintf("%.2fs", result.Duration.Seconds()))
	}

	_, err := w.Write(b.Bytes())
	return err
}

// SummarySink writes the summary of every record to a text file in Dir.
// Its stats are recomputed from the record's results.
type SummarySink struct {
	Dir string
}

// Path returns the file the summary of a record with the given id is
// written to.
func (sink *SummarySink) Path(id string) string {
	return filepath.Join(sink.Dir, fmt.Sprintf("tournament_%s_summary.txt", id))
}

func (sink *SummarySink) Write(_ context.Context, record Record) error {
	if err := common.TryMkdir(sink.Dir); err != nil {
		return fmt.Errorf("summary sink: %w", err)
	}

	path := sink.Path(record.ID)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("summary sink: %w", err)
	}

	summary := tournament.ComputeStats([2]string{record.Player1, record.Player2}, record.Results)
	if err := WriteSummary(file, record, summary); err != nil {
		_ = file.Close()
		return fmt.Errorf("summary sink: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("summary sink: %w", err)
	}

	logrus.Infof("Tournament summary saved to %s", path)
	return nil
}
