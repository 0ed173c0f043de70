// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package stats

import "math"

// Estimate is an elo difference together with its 95% confidence bounds.
type Estimate struct {
	Lower, Elo, Upper float64
}

// Error returns the larger distance between the estimate and its bounds.
func (e Estimate) Error() float64 {
	return math.Abs(math.Max(e.Upper-e.Elo, e.Elo-e.Lower))
}

// Elo estimates the elo difference of a player from its wins, draws and
// losses. Every result count gets half a game as a prior so that one sided
// samples stay finite. An empty sample has a zero estimate.
func Elo(wins, draws, losses int) Estimate {
	if wins+draws+losses == 0 {
		return Estimate{}
	}

	n := float64(wins+draws+losses) + 1.5

	w := (float64(wins) + 0.5) / n
	d := (float64(draws) + 0.5) / n
	l := (float64(losses) + 0.5) / n

	// expected score per game and its standard error
	mu := w + d/2
	sigma := math.Sqrt(
		w*math.Pow(1-mu, 2)+
			d*math.Pow(0.5-mu, 2)+
			l*math.Pow(0-mu, 2),
	) / math.Sqrt(n)

	return Estimate{
		Lower: scoreToElo(mu + phiInv(0.025)*sigma),
		Elo:   scoreToElo(mu),
		Upper: scoreToElo(mu + phiInv(0.975)*sigma),
	}
}

// Pairs counts game pairs, two games between the same players with the
// sides swapped, by the player's total score over the pair.
type Pairs struct {
	LossLoss, LossDraw, DrawDraw, WinDraw, WinWin int
}

// Total returns the number of pairs.
func (p Pairs) Total() int {
	return p.LossLoss + p.LossDraw + p.DrawDraw + p.WinDraw + p.WinWin
}

// Add counts a pair given the player's score in each of its two games,
// where a win is 1, a draw 0.5 and a loss 0.
func (p *Pairs) Add(score1, score2 float64) {
	switch score1 + score2 {
	case 0:
		p.LossLoss++
	case 0.5:
		p.LossDraw++
	case 1:
		p.DrawDraw++
	case 1.5:
		p.WinDraw++
	case 2:
		p.WinWin++
	}
}

// PentaElo estimates the elo difference of a player from its game pairs
// using a pentanomial model, which accounts for the correlation between the
// two games of a pair. No pairs give a zero estimate.
func PentaElo(p Pairs) Estimate {
	if p.Total() == 0 {
		return Estimate{}
	}

	n := float64(p.Total()) + 2.5

	ll := (float64(p.LossLoss) + 0.5) / n
	ld := (float64(p.LossDraw) + 0.5) / n
	dd := (float64(p.DrawDraw) + 0.5) / n
	wd := (float64(p.WinDraw) + 0.5) / n
	ww := (float64(p.WinWin) + 0.5) / n

	// expected score per game over a pair and its standard error
	mu := ww + 0.75*wd + 0.5*dd + 0.25*ld
	sigma := math.Sqrt(
		ww*math.Pow(1-mu, 2)+
			wd*math.Pow(0.75-mu, 2)+
			dd*math.Pow(0.50-mu, 2)+
			ld*math.Pow(0.25-mu, 2)+
			ll*math.Pow(0.00-mu, 2),
	) / math.Sqrt(n)

	return Estimate{
		Lower: scoreToElo(mu + phiInv(0.025)*sigma),
		Elo:   scoreToElo(mu),
		Upper: scoreToElo(mu + phiInv(0.975)*sigma),
	}
}

// scores closer than this to 0 or 1 are clamped, capping elo at about 2400
const scoreEpsilon = 1e-6

// scoreToElo converts an expected score into an elo difference. Scores out
// of (0, 1), which only confidence bounds reach, map to the nearest finite
// elo so that Lower <= Elo <= Upper always holds.
func scoreToElo(x float64) float64 {
	x = math.Max(scoreEpsilon, math.Min(1-scoreEpsilon, x))
	return -400 * math.Log10(1/x-1)
}

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
