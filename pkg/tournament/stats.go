package tournament

import (
	"time"

	"laptudirm.com/x/breakthrough/pkg/stats"
)

// Stats are the aggregate numbers of a set of game results.
type Stats struct {
	TotalGames int            `yaml:"total-games" json:"total_games"`
	Wins       map[string]int `yaml:"wins" json:"wins"`
	Draws      int            `yaml:"draws" json:"draws"`
	Incomplete int            `yaml:"incomplete" json:"incomplete"`

	TotalDuration   time.Duration `yaml:"total-duration" json:"total_duration"`
	AverageDuration time.Duration `yaml:"average-duration" json:"average_duration"`
	DurationStdDev  time.Duration `yaml:"duration-stddev" json:"duration_stddev"`

	TotalMoves   int     `yaml:"total-moves" json:"total_moves"`
	AverageMoves float64 `yaml:"average-moves" json:"average_moves"`

	// Elo of the first player against the second, from single games and
	// from pairs of games with swapped sides.
	Elo      stats.Estimate `yaml:"elo" json:"elo"`
	PentaElo stats.Estimate `yaml:"penta-elo" json:"penta_elo"`
}

// ComputeStats aggregates the results of games between the named players
// in a single pass. The results must be ordered by game index so that
// games 2k-1 and 2k form a pair.
func ComputeStats(players [2]string, results []GameResult) Stats {
	summary := Stats{
		TotalGames: len(results),
		Wins:       map[string]int{players[0]: 0, players[1]: 0},
	}

	var pairs stats.Pairs
	durations := make([]time.Duration, 0, len(results))

	for i, result := range results {
		switch {
		case result.Incomplete:
			summary.Incomplete++
		case result.Draw:
			summary.Draws++
		default:
			summary.Wins[result.Winner]++
		}

		durations = append(durations, result.Duration)
		summary.TotalMoves += result.MoveCount

		if i%2 == 1 {
			prev := results[i-1]
			if !prev.Incomplete && !result.Incomplete {
				pairs.Add(prev.Score(players[0]), result.Score(players[0]))
			}
		}
	}

	summary.TotalDuration, summary.AverageDuration, summary.DurationStdDev = stats.Moments(durations)
	if summary.TotalGames > 0 {
		summary.AverageMoves = float64(summary.TotalMoves) / float64(summary.TotalGames)
	}

	summary.Elo = stats.Elo(summary.Wins[players[0]], summary.Draws, summary.Wins[players[1]])
	summary.PentaElo = stats.PentaElo(pairs)

	return summary
}
