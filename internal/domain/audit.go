package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one immutable entry in the append-only audit ledger.
// The core creates records synchronously with every transition attempt that
// reaches the mutation step; it never updates or deletes them. A failed
// write is logged and swallowed — the ledger is observability, not part of
// the consistency boundary.
type AuditRecord struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ActorID    uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	Action     AuditAction
	Before     map[string]any
	After      map[string]any
	Metadata   map[string]any
	CreatedAt  time.Time
}
