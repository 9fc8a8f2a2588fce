// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"time"

	"github.com/google/uuid"
)

// Clock provides the current time. Usecases never call time.Now directly so
// that tests can run against a fixed clock.
type Clock interface {
	Now() time.Time
}

// IDGenerator provides new entity identifiers. Usecases never call
// uuid.New directly so that tests can run against a deterministic sequence.
type IDGenerator interface {
	NewID() uuid.UUID
}
