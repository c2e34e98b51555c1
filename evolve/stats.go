package evolve

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WinRate returns wins / (wins + losses), or 0 when no decided games were played.
func WinRate(wins, losses int) float64 {
	played := wins + losses
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played)
}

// Summary aggregates win rates across a set of members.
type Summary struct {
	Members       int
	TotalWins     int
	MeanWinRate   float64
	StdDevWinRate float64 // Sample standard deviation, 0 for fewer than two members
	BestWinRate   float64
}

// Summarize computes win-rate statistics over members.
func Summarize(members []*Member) Summary {
	s := Summary{Members: len(members)}
	if len(members) == 0 {
		return s
	}

	rates := make([]float64, len(members))
	for i, m := range members {
		rates[i] = WinRate(m.Wins, m.Losses)
		s.TotalWins += m.Wins
	}
	s.MeanWinRate = stat.Mean(rates, nil)
	if len(rates) > 1 {
		s.StdDevWinRate = stat.StdDev(rates, nil)
	}
	s.BestWinRate = floats.Max(rates)
	return s
}
