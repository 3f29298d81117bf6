package game

import "time"

// EventType names a state transition the presentation layer should be
// told about.
type EventType string

const (
	EventExpeditionComplete EventType = "expedition:complete"
	EventFishingBite        EventType = "fishing:bite"
	EventFishingLost        EventType = "fishing:lost"
	EventFishingReady       EventType = "fishing:ready"
	EventSiftingExpired     EventType = "sifting:expired"
)

// Event is a plain-data notification produced by Advance.
type Event struct {
	Type EventType `json:"type"`
	Slot int       `json:"slot,omitempty"`
}

// Advance drives every deadline-based state machine forward to now.
// The host calls it once per second; it is safe to call with an
// arbitrarily late now, since each machine keys off deadlines rather
// than counting ticks.
func (c *Core) Advance(now time.Time) []Event {
	var events []Event
	for _, slot := range c.advanceExpeditions(now) {
		events = append(events, Event{Type: EventExpeditionComplete, Slot: slot})
	}
	events = append(events, c.advanceFishing(now)...)
	events = append(events, c.advanceSifting(now)...)
	return events
}
