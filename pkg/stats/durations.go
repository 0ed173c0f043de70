package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Moments returns the total, mean and sample standard deviation of the
// given durations. All of them are zero for an empty sample, and the
// deviation is zero for a single duration.
func Moments(durations []time.Duration) (total, mean, stddev time.Duration) {
	if len(durations) == 0 {
		return 0, 0, 0
	}

	xs := make([]float64, len(durations))
	for i, d := range durations {
		total += d
		xs[i] = d.Seconds()
	}

	if len(xs) == 1 {
		return total, total, 0
	}

	m, s := stat.MeanStdDev(xs, nil)
	return total, seconds(m), seconds(s)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
