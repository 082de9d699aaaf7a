package domain

import "github.com/google/uuid"

// Event is a domain event raised by an aggregate mutation. Events are
// collected on the aggregate and published by the unit of work after a
// successful commit. Delivery is at-most-once: a publish failure is logged
// and dropped, so events must only drive best-effort side effects.
type Event interface {
	EventName() string
}

// EventRecorder accumulates pending domain events on an aggregate.
// It is embedded in aggregates and never persisted.
type EventRecorder struct {
	events []Event
}

// Record appends a pending event
func (r *EventRecorder) Record(e Event) {
	r.events = append(r.events, e)
}

// DrainEvents returns pending events and clears the list
func (r *EventRecorder) DrainEvents() []Event {
	out := r.events
	r.events = nil
	return out
}

// CompanyCreatedEvent is raised when a company aggregate is created
type CompanyCreatedEvent struct {
	CompanyID uuid.UUID
}

func (CompanyCreatedEvent) EventName() string { return "company.created" }

// CompanyPhotosChangedEvent is raised when a company's stored photo keys change
type CompanyPhotosChangedEvent struct {
	CompanyID uuid.UUID
}

func (CompanyPhotosChangedEvent) EventName() string { return "company.photos_changed" }

// GuildMasterChangedEvent is raised when a guild is assigned a new master
type GuildMasterChangedEvent struct {
	GuildID  uuid.UUID
	MasterID uuid.UUID
}

func (GuildMasterChangedEvent) EventName() string { return "guild.master_changed" }

// PlayerGuildAssignedEvent is raised when a player joins or leaves a guild
type PlayerGuildAssignedEvent struct {
	PlayerID uuid.UUID
	GuildID  *uuid.UUID
}

func (PlayerGuildAssignedEvent) EventName() string { return "player.guild_assigned" }
