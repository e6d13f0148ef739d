package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Bidding.validate(); err != nil {
		return fmt.Errorf("bidding: %w", err)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be memory or redis (got %q)", c.Cache.Backend)
	}

	return nil
}

func (b *BiddingConfig) validate() error {
	switch b.IdempotencyStrategy {
	case "SERVER_HASH", "CLIENT_UUID":
	default:
		return fmt.Errorf("idempotency_strategy must be SERVER_HASH or CLIENT_UUID (got %q)", b.IdempotencyStrategy)
	}
	if b.TxTimeout <= 0 {
		return fmt.Errorf("tx_timeout must be > 0 (got %v)", b.TxTimeout)
	}
	if b.IdempotencyBucket <= 0 {
		return fmt.Errorf("idempotency_bucket must be > 0 (got %v)", b.IdempotencyBucket)
	}
	if b.SoftCloseTriggerMinutes <= 0 {
		return fmt.Errorf("soft_close_trigger_minutes must be > 0 (got %d)", b.SoftCloseTriggerMinutes)
	}
	if b.SoftCloseExtensionMinutes <= 0 {
		return fmt.Errorf("soft_close_extension_minutes must be > 0 (got %d)", b.SoftCloseExtensionMinutes)
	}
	return nil
}
