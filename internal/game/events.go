package game

import "time"

// EventType identifies an engine event
type EventType string

const (
	EventTypeRoundResolved EventType = "round_resolved"
	EventTypeRoundAdvanced EventType = "round_advanced"
	EventTypeMatchOver     EventType = "match_over"
	EventTypeMatchReset    EventType = "match_reset"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engine publishes after a successful transition.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundResolvedEvent is published after every accepted move, including the
// one that ends the match.
type RoundResolvedEvent struct {
	MatchID   string
	Result    RoundResult
	timestamp time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// RoundAdvancedEvent is published when the next round opens
type RoundAdvancedEvent struct {
	MatchID   string
	Info      RoundInfo
	timestamp time.Time
}

func (e RoundAdvancedEvent) EventType() EventType { return EventTypeRoundAdvanced }
func (e RoundAdvancedEvent) Timestamp() time.Time { return e.timestamp }

// MatchOverEvent follows the RoundResolvedEvent of the final round.
type MatchOverEvent struct {
	Summary   MatchSummary
	timestamp time.Time
}

func (e MatchOverEvent) EventType() EventType { return EventTypeMatchOver }
func (e MatchOverEvent) Timestamp() time.Time { return e.timestamp }

// MatchResetEvent is published by ResetGame.
type MatchResetEvent struct {
	State     MatchState
	timestamp time.Time
}

func (e MatchResetEvent) EventType() EventType { return EventTypeMatchReset }
func (e MatchResetEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives engine events.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// Subscription identifies one registration on an EventBus.
type Subscription uint64

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) Subscription
	Unsubscribe(sub Subscription)
	Publish(event GameEvent)
}

type registration struct {
	id         Subscription
	subscriber EventSubscriber
}

// SimpleEventBus delivers events synchronously in subscription order.
type SimpleEventBus struct {
	nextID        Subscription
	registrations []registration
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe registers subscriber and returns the handle that removes it.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) Subscription {
	bus.nextID++
	bus.registrations = append(bus.registrations, registration{id: bus.nextID, subscriber: subscriber})
	return bus.nextID
}

// Unsubscribe removes the registration. Unknown handles are ignored.
func (bus *SimpleEventBus) Unsubscribe(sub Subscription) {
	for i, r := range bus.registrations {
		if r.id == sub {
			bus.registrations = append(bus.registrations[:i], bus.registrations[i+1:]...)
			return
		}
	}
}

func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, r := range bus.registrations {
		r.subscriber.OnEvent(event)
	}
}
