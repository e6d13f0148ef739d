package domain

// AuctionStatus represents the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionStatusDraft             AuctionStatus = "DRAFT"
	AuctionStatusPendingValidation AuctionStatus = "PENDING_VALIDATION"
	AuctionStatusApproved          AuctionStatus = "APPROVED"
	AuctionStatusOpenForBids       AuctionStatus = "OPEN_FOR_BIDS"
	AuctionStatusLiveAuction       AuctionStatus = "LIVE_AUCTION"
	AuctionStatusSuspended         AuctionStatus = "SUSPENDED"
	AuctionStatusClosed            AuctionStatus = "CLOSED"
	AuctionStatusCancelled         AuctionStatus = "CANCELLED"
)

func (s AuctionStatus) String() string { return string(s) }

func (s AuctionStatus) IsValid() bool {
	switch s {
	case AuctionStatusDraft, AuctionStatusPendingValidation, AuctionStatusApproved,
		AuctionStatusOpenForBids, AuctionStatusLiveAuction, AuctionStatusSuspended,
		AuctionStatusClosed, AuctionStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s AuctionStatus) IsTerminal() bool {
	return s == AuctionStatusClosed || s == AuctionStatusCancelled
}

// IsOpenForBidding reports whether bids may be accepted on the auction's lots.
func (s AuctionStatus) IsOpenForBidding() bool {
	return s == AuctionStatusOpenForBids || s == AuctionStatusLiveAuction
}

// LotStatus represents the lifecycle state of a single lot.
type LotStatus string

const (
	LotStatusDraft       LotStatus = "DRAFT"
	LotStatusScheduled   LotStatus = "SCHEDULED"
	LotStatusOpenForBids LotStatus = "OPEN_FOR_BIDS"
	LotStatusLiveAuction LotStatus = "LIVE_AUCTION"
	LotStatusSold        LotStatus = "SOLD"
	LotStatusUnsold      LotStatus = "UNSOLD"
	LotStatusClosed      LotStatus = "CLOSED"
	LotStatusRelisted    LotStatus = "RELISTED"
	LotStatusCancelled   LotStatus = "CANCELLED"
	LotStatusWithdrawn   LotStatus = "WITHDRAWN"
)

func (s LotStatus) String() string { return string(s) }

func (s LotStatus) IsValid() bool {
	switch s {
	case LotStatusDraft, LotStatusScheduled, LotStatusOpenForBids, LotStatusLiveAuction,
		LotStatusSold, LotStatusUnsold, LotStatusClosed, LotStatusRelisted,
		LotStatusCancelled, LotStatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s LotStatus) IsTerminal() bool {
	switch s {
	case LotStatusClosed, LotStatusCancelled, LotStatusWithdrawn:
		return true
	}
	return false
}

// IsBiddable reports whether the lot accepts bids in this state.
// Price is frozen outside this set.
func (s LotStatus) IsBiddable() bool {
	return s == LotStatusOpenForBids || s == LotStatusLiveAuction
}

// BidOrigin identifies how a bid entered the system.
type BidOrigin string

const (
	BidOriginManual  BidOrigin = "MANUAL"
	BidOriginAutoBid BidOrigin = "AUTO_BID"
	BidOriginProxy   BidOrigin = "PROXY"
	BidOriginAPI     BidOrigin = "API"
)

func (o BidOrigin) String() string { return string(o) }

func (o BidOrigin) IsValid() bool {
	switch o {
	case BidOriginManual, BidOriginAutoBid, BidOriginProxy, BidOriginAPI:
		return true
	}
	return false
}

// BidStatus marks whether a bid still counts toward the lot's price history.
type BidStatus string

const (
	BidStatusActive    BidStatus = "ACTIVE"
	BidStatusCancelled BidStatus = "CANCELLED"
)

func (s BidStatus) String() string { return string(s) }

func (s BidStatus) IsValid() bool {
	return s == BidStatusActive || s == BidStatusCancelled
}

// IdempotencyStrategy selects how the bid engine derives deduplication keys.
type IdempotencyStrategy string

const (
	// IdempotencyServerHash derives the key from (lot, bidder, amount, time bucket).
	IdempotencyServerHash IdempotencyStrategy = "SERVER_HASH"
	// IdempotencyClientUUID uses a client-supplied key verbatim.
	IdempotencyClientUUID IdempotencyStrategy = "CLIENT_UUID"
)

func (s IdempotencyStrategy) String() string { return string(s) }

func (s IdempotencyStrategy) IsValid() bool {
	return s == IdempotencyServerHash || s == IdempotencyClientUUID
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeAuction EntityType = "AUCTION"
	EntityTypeLot     EntityType = "LOT"
	EntityTypeBid     EntityType = "BID"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeAuction, EntityTypeLot, EntityTypeBid:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionSubmit      AuditAction = "SUBMIT_FOR_VALIDATION"
	AuditActionApprove     AuditAction = "APPROVE"
	AuditActionReject      AuditAction = "REJECT"
	AuditActionOpen        AuditAction = "OPEN"
	AuditActionStartLive   AuditAction = "START_LIVE"
	AuditActionSuspend     AuditAction = "SUSPEND"
	AuditActionResume      AuditAction = "RESUME"
	AuditActionReturn      AuditAction = "RETURN_TO_VALIDATION"
	AuditActionCancel      AuditAction = "CANCEL"
	AuditActionForceClose  AuditAction = "FORCE_CLOSE"
	AuditActionSchedule    AuditAction = "SCHEDULE"
	AuditActionConfirmSale AuditAction = "CONFIRM_SALE"
	AuditActionMarkUnsold  AuditAction = "MARK_UNSOLD"
	AuditActionClose       AuditAction = "CLOSE"
	AuditActionRelist      AuditAction = "RELIST"
	AuditActionWithdraw    AuditAction = "WITHDRAW"
	AuditActionBidPlaced   AuditAction = "BID_PLACED"
	AuditActionBidsVoided  AuditAction = "BIDS_VOIDED"
	AuditActionSoftClose   AuditAction = "SOFT_CLOSE_EXTEND"
)

func (a AuditAction) String() string { return string(a) }
