package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	// Subject is a human-readable label for the entity (person or country name).
	Subject   string `json:"subject,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
}

type AuditEvent string

const (
	// Person events
	EventPersonCreated AuditEvent = "person_created"
	EventPersonUpdated AuditEvent = "person_updated"
	EventPersonDeleted AuditEvent = "person_deleted"

	// Country events
	EventCountryCreated AuditEvent = "country_created"
)

// Entity types carried on events.
const (
	EntityPerson  = "person"
	EntityCountry = "country"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can be queried back, used in tests and tooling.
type Lister interface {
	ListByEntity(ctx context.Context, entityID string) ([]Event, error)
}
