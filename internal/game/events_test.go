package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/rps"
)

// testEventSubscriber captures events for testing
type testEventSubscriber struct {
	events []GameEvent
}

func (s *testEventSubscriber) OnEvent(event GameEvent) {
	s.events = append(s.events, event)
}

func (s *testEventSubscriber) types() []EventType {
	types := make([]EventType, len(s.events))
	for i, ev := range s.events {
		types[i] = ev.EventType()
	}
	return types
}

func TestEnginePublishesEvents(t *testing.T) {
	clock := quartz.NewMock(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(now)

	bus := NewEventBus()
	sub := &testEventSubscriber{}
	bus.Subscribe(sub)

	e, err := NewEngine(
		WithTotalRounds(2),
		WithMoveSource(scripted(t, rps.Scissors)),
		WithEventBus(bus),
		WithClock(clock),
		WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	_, err = e.SubmitMove(rps.Rock)
	require.NoError(t, err)
	_, err = e.AdvanceRound()
	require.NoError(t, err)
	_, err = e.SubmitMove(rps.Rock)
	require.NoError(t, err)
	e.ResetGame()

	assert.Equal(t, []EventType{
		EventTypeRoundResolved,
		EventTypeRoundAdvanced,
		EventTypeRoundResolved,
		EventTypeMatchOver,
		EventTypeMatchReset,
	}, sub.types())

	for _, ev := range sub.events {
		assert.Equal(t, now, ev.Timestamp())
	}

	resolved := sub.events[2].(RoundResolvedEvent)
	require.NotNil(t, resolved.Result.Summary)
	over := sub.events[3].(MatchOverEvent)
	assert.Equal(t, rps.Player, over.Summary.Winner)
	assert.Equal(t, *resolved.Result.Summary, over.Summary)

	advanced := sub.events[1].(RoundAdvancedEvent)
	assert.True(t, advanced.Info.IsLastRound)

	reset := sub.events[4].(MatchResetEvent)
	assert.Equal(t, 1, reset.State.PlayerWins)
}

func TestRejectedOperationsPublishNothing(t *testing.T) {
	bus := NewEventBus()
	sub := &testEventSubscriber{}
	bus.Subscribe(sub)

	e, err := NewEngine(WithEventBus(bus), WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = e.AdvanceRound()
	require.Error(t, err)
	_, err = e.SubmitMove(rps.Move(9))
	require.Error(t, err)

	assert.Empty(t, sub.events)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &testEventSubscriber{}
	b := &testEventSubscriber{}
	subA := bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(MatchResetEvent{})
	bus.Unsubscribe(subA)
	bus.Publish(MatchResetEvent{})
	bus.Unsubscribe(subA)

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
}

// sliceSubscriber is a value type holding a slice, so it is not comparable.
type sliceSubscriber struct {
	seen *[]EventType
	tags []string
}

func (s sliceSubscriber) OnEvent(ev GameEvent) { *s.seen = append(*s.seen, ev.EventType()) }

func TestEventBusUnsubscribeValueSubscriber(t *testing.T) {
	bus := NewEventBus()
	var seen []EventType
	sub := bus.Subscribe(sliceSubscriber{seen: &seen, tags: []string{"a"}})

	bus.Publish(MatchOverEvent{})
	bus.Unsubscribe(sub)
	bus.Publish(MatchResetEvent{})

	assert.Equal(t, []EventType{EventTypeMatchOver}, seen)
}

func TestEventBusFuncSubscriber(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	fn := EventSubscriberFunc(func(ev GameEvent) { got = append(got, ev.EventType()) })
	sub := bus.Subscribe(fn)

	bus.Publish(MatchOverEvent{})
	bus.Unsubscribe(sub)
	bus.Publish(MatchResetEvent{})

	assert.Equal(t, []EventType{EventTypeMatchOver}, got)
}
