package infrastructure

import (
	"fmt"

	"bankhub/domain/events"
)

// EventSubjectMapper maps domain events to NATS subjects of the form bank.<guild>.<kind>
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

var subjectKinds = map[events.EventType]string{
	events.EventTypeBankToggleChanged: "toggle",
	events.EventTypeBankHubPosted:     "hub",
	events.EventTypeBankerRoleChanged: "banker_role",
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	kind, ok := subjectKinds[event.Type()]
	if !ok {
		return fmt.Sprintf("unknown.%s", event.Type())
	}

	guild := "global"
	if scoped, ok := event.(events.GuildScoped); ok {
		guild = fmt.Sprintf("%d", scoped.Guild())
	}
	return fmt.Sprintf("bank.%s.%s", guild, kind)
}

// GetAllSubjects returns the wildcard subjects the bank event stream must capture
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"bank.*.toggle",
		"bank.*.hub",
		"bank.*.banker_role",
	}
}
