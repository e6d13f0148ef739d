package bidding

import (
	"context"
	"time"

	"github.com/hammerhouse/auction-backend/internal/domain"
	"github.com/hammerhouse/auction-backend/pkg/ctxutil"
)

// evaluateSoftClose extends a lot's end date when an accepted bid lands
// inside the trigger window, keeping last-second sniping from deciding the
// lot. Re-evaluated on every accepted bid; each qualifying bid extends at
// most once because the extension pushes the end date back out of the
// window. Best effort: runs after commit, failures are logged only.
func (s *Service) evaluateSoftClose(ctx context.Context, settings domain.TenantSettings, lot *domain.Lot) {
	if !settings.SoftCloseEnabled || lot.EndDate == nil {
		return
	}

	trigger := time.Duration(settings.SoftCloseTriggerMinutes) * time.Minute
	extension := time.Duration(settings.SoftCloseExtensionMinutes) * time.Minute

	remaining := time.Until(*lot.EndDate)
	if remaining <= 0 || remaining > trigger {
		return
	}

	// The clock restarts from the bid, not the old end date: a qualifying
	// bid always leaves the full extension on the table.
	newEnd := time.Now().Add(extension)
	extended, err := s.lots.ExtendEndDate(ctx, lot.TenantID, lot.ID, newEnd)
	if err != nil {
		s.log.WarnContext(ctx, "soft close extension failed",
			"lot_id", lot.ID, "error", err)
		return
	}
	if !extended {
		// Lot left the biddable set between commit and now.
		return
	}

	s.log.InfoContext(ctx, "soft close extended",
		"lot_id", lot.ID,
		"new_end_date", newEnd,
		"minutes_remaining", int(remaining.Minutes()))

	actorID, _ := ctxutil.ActorIDFromCtx(ctx)
	s.writeAudit(ctx, domain.AuditRecord{
		TenantID:   lot.TenantID,
		ActorID:    actorID,
		EntityType: domain.EntityTypeLot,
		EntityID:   lot.ID,
		Action:     domain.AuditActionSoftClose,
		Metadata: map[string]any{
			"new_end_date":      newEnd.UTC().Format(time.RFC3339),
			"minutes_remaining": int(remaining.Minutes()),
		},
	})

	e := domain.SoftCloseEvent{
		TenantID:         lot.TenantID,
		AuctionID:        lot.AuctionID,
		LotID:            lot.ID,
		MinutesRemaining: int(remaining.Minutes()),
		NewEndDate:       newEnd,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.events.EmitSoftClose(ctx, e); err != nil {
		s.log.WarnContext(ctx, "soft close event emission failed",
			"lot_id", lot.ID, "error", err)
	}

	lot.EndDate = &newEnd
}
