// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock with the real wall clock in UTC.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return &systemClock{}
}

// Now returns the current UTC time.
func (c *systemClock) Now() time.Time {
	return time.Now().UTC()
}

// uuidGenerator implements adapter.IDGenerator with random UUIDs.
type uuidGenerator struct{}

// NewUUIDGenerator creates an ID generator backed by uuid.New.
func NewUUIDGenerator() adapter.IDGenerator {
	return &uuidGenerator{}
}

// NewID returns a new random UUID.
func (g *uuidGenerator) NewID() uuid.UUID {
	return uuid.New()
}
