package infrastructure

import (
	"context"
	"sync"

	"bankhub/domain/events"
	"bankhub/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// Handler is a function that handles events
type Handler func(ctx context.Context, event events.Event)

// LocalEventBus dispatches events to in-process subscribers and forwards
// every event to the next publisher (NATS or no-op).
type LocalEventBus struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]Handler
	next     interfaces.EventPublisher
	inflight sync.WaitGroup
}

// NewLocalEventBus creates a new event bus. next may be nil.
func NewLocalEventBus(next interfaces.EventPublisher) *LocalEventBus {
	return &LocalEventBus{
		handlers: make(map[events.EventType][]Handler),
		next:     next,
	}
}

// Subscribe adds a handler for the given event types
func (b *LocalEventBus) Subscribe(handler Handler, eventTypes ...events.EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		b.handlers[eventType] = append(b.handlers[eventType], handler)

		log.WithFields(log.Fields{
			"eventType":    eventType,
			"handlerCount": len(b.handlers[eventType]),
		}).Debug("Subscribed handler to event type on local event bus")
	}
}

// Publish calls the local handlers asynchronously, then forwards the event.
// The forwarding error is returned; handler failures are only logged.
func (b *LocalEventBus) Publish(event events.Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler, handlerIndex int) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(context.Background(), event)
		}(handler, i)
	}

	if b.next == nil {
		return nil
	}
	return b.next.Publish(event)
}

// Wait blocks until every handler started so far has returned
func (b *LocalEventBus) Wait() {
	b.inflight.Wait()
}

// AuditLogHandler writes one structured log line per banking event
func AuditLogHandler(ctx context.Context, event events.Event) {
	fields := log.Fields{"event_type": event.Type()}

	switch e := event.(type) {
	case events.BankToggleChangedEvent:
		fields["guild_id"] = e.GuildID
		fields["actor_id"] = e.ActorID
		fields["toggle"] = e.Toggle
		fields["enabled"] = e.Enabled
		fields["hub_synced"] = e.HubSynced
	case events.BankHubPostedEvent:
		fields["guild_id"] = e.GuildID
		fields["actor_id"] = e.ActorID
		fields["channel_id"] = e.ChannelID
		fields["message_id"] = e.MessageID
	case events.BankerRoleChangedEvent:
		fields["guild_id"] = e.GuildID
		fields["actor_id"] = e.ActorID
		fields["role_id"] = e.RoleID
	}

	log.WithFields(fields).Info("Bank audit")
}
