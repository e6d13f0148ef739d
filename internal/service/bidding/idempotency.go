package bidding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// serverHashKey derives an idempotency key for the SERVER_HASH strategy:
// identical bids from the same user on the same lot within one time bucket
// collapse into one. The bucket width bounds how long a retry stays
// deduplicated.
func serverHashKey(lotID, userID uuid.UUID, amount decimal.Decimal, bucket time.Duration, now time.Time) string {
	if bucket <= 0 {
		bucket = 10 * time.Second
	}
	slot := now.UnixNano() / int64(bucket)
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", lotID, userID, amount, slot)))
	return hex.EncodeToString(sum[:])
}

// idempotencyKey resolves the key to store with a bid, or nil when
// deduplication is off for this request. Under SERVER_HASH a client-reported
// timestamp anchors the bucket, so a delayed retry of the same submission
// still collapses onto the original.
func (s *Service) idempotencyKey(settings domain.TenantSettings, input PlaceBidInput, bidderID uuid.UUID, now time.Time) *string {
	switch settings.IdempotencyStrategy {
	case domain.IdempotencyClientUUID:
		return input.IdempotencyKey
	default:
		if input.ClientTimestamp != nil {
			now = *input.ClientTimestamp
		}
		key := serverHashKey(input.LotID, bidderID, input.Amount, s.cfg.IdempotencyBucket, now)
		return &key
	}
}
