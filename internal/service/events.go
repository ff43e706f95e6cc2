package service

import "time"

// Event types broadcast to websocket subscribers after successful mutations.
const (
	EventElementCreated  = "element_created"
	EventElementUpdated  = "element_updated"
	EventElementDeleted  = "element_deleted"
	EventRegistryAdded   = "registry_added"
	EventRegistryUpdated = "registry_updated"
	EventRegistryRemoved = "registry_removed"
	EventRegistryPlaced  = "registry_placed"
	EventSnapshotLoaded  = "snapshot_imported"
)

// Event is a change notification. ID and Name identify the affected record
// where that makes sense; TS is set by the publishing service.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id,omitempty"`
	Name string    `json:"name,omitempty"`
	TS   time.Time `json:"ts"`
}

// EventPublisher fans events out to connected clients. Implementations must
// not block the caller.
type EventPublisher interface {
	Publish(e Event)
}

// publish is the nil-safe helper all services use.
func publish(p EventPublisher, eventType, id, name string) {
	if p == nil {
		return
	}
	p.Publish(Event{Type: eventType, ID: id, Name: name, TS: time.Now().UTC()})
}
