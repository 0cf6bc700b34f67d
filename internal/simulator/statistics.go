package simulator

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

// Statistics aggregates the results of simulated matches.
type Statistics struct {
	Matches         int
	PlayerMatches   int
	ComputerMatches int
	TiedMatches     int

	Rounds         int
	PlayerRounds   int
	ComputerRounds int
	DrawRounds     int

	// Sum and sum of squares of (player score - computer score) per match.
	SumMargin  float64
	SumMargin2 float64
}

// AddRound records one resolved round.
func (s *Statistics) AddRound(res game.RoundResult) {
	s.Rounds++
	switch res.Outcome {
	case rps.PlayerWin:
		s.PlayerRounds++
	case rps.ComputerWin:
		s.ComputerRounds++
	default:
		s.DrawRounds++
	}
}

// AddMatch records a finished match.
func (s *Statistics) AddMatch(summary game.MatchSummary) {
	s.Matches++
	switch summary.Winner {
	case rps.Player:
		s.PlayerMatches++
	case rps.Computer:
		s.ComputerMatches++
	default:
		s.TiedMatches++
	}
	margin := float64(summary.PlayerScore - summary.ComputerScore)
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
}

// OnEvent records resolved rounds and finished matches published by an
// engine, so a Statistics can be subscribed directly to its EventBus.
func (s *Statistics) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundResolvedEvent:
		s.AddRound(e.Result)
	case game.MatchOverEvent:
		s.AddMatch(e.Summary)
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Matches += other.Matches
	s.PlayerMatches += other.PlayerMatches
	s.ComputerMatches += other.ComputerMatches
	s.TiedMatches += other.TiedMatches
	s.Rounds += other.Rounds
	s.PlayerRounds += other.PlayerRounds
	s.ComputerRounds += other.ComputerRounds
	s.DrawRounds += other.DrawRounds
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
}

// WinRate is the share of matches the player won.
func (s *Statistics) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.PlayerMatches) / float64(s.Matches)
}

// MeanMargin is the average per-match score difference.
func (s *Statistics) MeanMargin() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Matches)
}

// StdDevMargin is the sample standard deviation of the score difference.
func (s *Statistics) StdDevMargin() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.MeanMargin()
	variance := (s.SumMargin2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
	return math.Sqrt(math.Max(variance, 0))
}

// Validate checks the counters add up.
func (s *Statistics) Validate() error {
	if got := s.PlayerMatches + s.ComputerMatches + s.TiedMatches; got != s.Matches {
		return fmt.Errorf("match outcomes sum to %d, want %d", got, s.Matches)
	}
	if got := s.PlayerRounds + s.ComputerRounds + s.DrawRounds; got != s.Rounds {
		return fmt.Errorf("round outcomes sum to %d, want %d", got, s.Rounds)
	}
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// Report renders the statistics as a short text summary.
func (s *Statistics) Report(strategy string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Strategy: %s\n", strategy)
	fmt.Fprintf(&b, "Matches:  %d (player %d / %.1f%%, computer %d / %.1f%%, tied %d / %.1f%%)\n",
		s.Matches,
		s.PlayerMatches, pct(s.PlayerMatches, s.Matches),
		s.ComputerMatches, pct(s.ComputerMatches, s.Matches),
		s.TiedMatches, pct(s.TiedMatches, s.Matches))
	fmt.Fprintf(&b, "Rounds:   %d (player %.1f%%, computer %.1f%%, draw %.1f%%)\n",
		s.Rounds,
		pct(s.PlayerRounds, s.Rounds),
		pct(s.ComputerRounds, s.Rounds),
		pct(s.DrawRounds, s.Rounds))
	fmt.Fprintf(&b, "Margin:   %+.3f ± %.3f per match\n", s.MeanMargin(), s.StdDevMargin())
	return b.String()
}
