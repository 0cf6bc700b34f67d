// Package game implements the Rock-Paper-Scissors match engine.
//
// The main type is Engine, which owns the state of a match: the current
// round, both scores, the session's cumulative match wins and the phase of
// the per-round state machine.
//
// # Basic Usage
//
//	e, err := game.NewEngine(game.WithTotalRounds(5))
//	if err != nil {
//	    return err
//	}
//	res, err := e.SubmitMove(rps.Rock)
//	if res.Summary == nil {
//	    info, err := e.AdvanceRound()
//	}
//	// after the final round
//	state := e.ResetGame()
//
// # State Machine
//
//	AwaitingMove --SubmitMove (round < total)--> RoundResolved
//	AwaitingMove --SubmitMove (round == total)--> MatchOver
//	RoundResolved --AdvanceRound--> AwaitingMove
//	MatchOver --ResetGame--> AwaitingMove
//
// Operations invoked in the wrong phase fail with ErrInvalidTransition and
// leave the engine untouched. ResetGame is accepted in every phase.
//
// # Deterministic Testing
//
// The computer's throw comes from a MoveSource. Tests inject a
// ScriptedMoveSource to fix the sequence:
//
//	src, _ := game.NewScriptedMoveSource(rps.Rock, rps.Scissors, rps.Paper)
//	e, _ := game.NewEngine(game.WithMoveSource(src))
//
// or a seeded random source:
//
//	src, _ := game.NewRandomMoveSource(randutil.New(42))
//	e, _ := game.NewEngine(game.WithMoveSource(src))
//
// Presentation layers never mutate engine state. They render the value
// objects returned by each operation, or subscribe to the EventBus.
package game
