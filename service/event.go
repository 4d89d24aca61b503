package service

import (
	"github.com/duke-git/lancet/v2/eventbus"
)

const (
	EventSaveCompleted = "save.completed"
	EventSaveFailed    = "save.failed"
)

type Event struct {
	Type    string
	Payload any
}

// SaveEventPayload is pushed to connected UI clients after every save
// attempt so the front end can toast the outcome.
type SaveEventPayload struct {
	Path   string `json:"path"`
	Bytes  int    `json:"bytes,omitempty"`
	Digest string `json:"digest,omitempty"`
	Format string `json:"format,omitempty"`
	Error  string `json:"error,omitempty"`
}

var eventBus = eventbus.NewEventBus[Event]()

func PublishEvent(eventType string, payload any) {
	event := Event{
		Type:    eventType,
		Payload: payload,
	}
	eventBus.Publish(eventbus.Event[Event]{Topic: eventType, Payload: event})
}

func SubscribeEvent(eventType string, handler func(eventData Event)) {
	eventBus.Subscribe(eventType, handler, true, 0, nil)
}
