package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a minimal projection of the user entity owned elsewhere. The core
// only references users (bidders, winners, actors) and validates existence.
type User struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	DisplayName string
	CreatedAt   time.Time
}
