package settings

import (
	"github.com/google/uuid"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// UpdateInput holds the parameters for replacing a tenant's settings.
type UpdateInput struct {
	TenantID                  uuid.UUID
	IdempotencyStrategy       domain.IdempotencyStrategy
	SoftCloseEnabled          bool
	SoftCloseTriggerMinutes   int
	SoftCloseExtensionMinutes int
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.TenantID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tenant_id", Message: "required"})
	}
	if !i.IdempotencyStrategy.IsValid() {
		errs = append(errs, domain.FieldError{Field: "idempotency_strategy", Message: "must be SERVER_HASH or CLIENT_UUID"})
	}
	if i.SoftCloseTriggerMinutes < 1 || i.SoftCloseTriggerMinutes > 60 {
		errs = append(errs, domain.FieldError{Field: "soft_close_trigger_minutes", Message: "must be between 1 and 60"})
	}
	if i.SoftCloseExtensionMinutes < 1 || i.SoftCloseExtensionMinutes > 60 {
		errs = append(errs, domain.FieldError{Field: "soft_close_extension_minutes", Message: "must be between 1 and 60"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
