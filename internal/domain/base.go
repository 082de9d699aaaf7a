package domain

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every aggregate via BaseModel
type Entity interface {
	EntityID() uuid.UUID
}

// BaseModel contains the identity and audit fields shared by all aggregates
type BaseModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdById"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updatedById,omitempty"`
}

// newBaseModel assigns identity and creation audit fields.
// A zero id means "generate one"; an explicit id is kept as-is so callers
// can create aggregates with client-supplied identifiers.
func newBaseModel(createdBy uuid.UUID, id uuid.UUID) BaseModel {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return BaseModel{
		ID:          id,
		CreatedAt:   time.Now().UTC(),
		CreatedByID: createdBy,
	}
}

// SetAuditUpdate stamps the update audit fields
func (b *BaseModel) SetAuditUpdate(updatedBy uuid.UUID) {
	now := time.Now().UTC()
	b.UpdatedAt = &now
	b.UpdatedByID = &updatedBy
}

// EntityID returns the aggregate identity
func (b *BaseModel) EntityID() uuid.UUID {
	return b.ID
}

// SameEntity reports whether two entities refer to the same aggregate.
// Entities of different concrete types are never equal, even with the same
// id, and entities without a valid id are never equal.
func SameEntity(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a.EntityID() == uuid.Nil || b.EntityID() == uuid.Nil {
		return false
	}
	return a.EntityID() == b.EntityID()
}
