package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps for domain entities.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity creates an entity with a generated ID and current timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{id: uuid.New(), createdAt: now, updatedAt: now}
}

// ID returns the entity identity.
func (e BaseEntity) ID() uuid.UUID { return e.id }

// CreatedAt returns when the entity was created.
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns when the entity last changed.
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch records a modification.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}
