package domain

import "github.com/google/uuid"

// Default soft-close parameters, applied when a tenant has no stored settings.
const (
	DefaultSoftCloseTriggerMinutes   = 3
	DefaultSoftCloseExtensionMinutes = 5
)

// TenantSettings is the read-only configuration surface the bid engine
// consumes, scoped per tenant.
type TenantSettings struct {
	TenantID                  uuid.UUID
	IdempotencyStrategy       IdempotencyStrategy
	SoftCloseEnabled          bool
	SoftCloseTriggerMinutes   int
	SoftCloseExtensionMinutes int
}

// DefaultTenantSettings returns the settings used for tenants without a row.
func DefaultTenantSettings(tenantID uuid.UUID) TenantSettings {
	return TenantSettings{
		TenantID:                  tenantID,
		IdempotencyStrategy:       IdempotencyServerHash,
		SoftCloseEnabled:          true,
		SoftCloseTriggerMinutes:   DefaultSoftCloseTriggerMinutes,
		SoftCloseExtensionMinutes: DefaultSoftCloseExtensionMinutes,
	}
}
