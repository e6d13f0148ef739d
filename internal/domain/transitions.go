package domain

// Static transition graphs for auctions and lots. Statuses are never assigned
// directly: every write goes through a state-machine operation that consults
// these tables first. An invalid pair must fail before any storage access.

var auctionTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionStatusDraft: {
		AuctionStatusPendingValidation,
		AuctionStatusCancelled,
	},
	AuctionStatusPendingValidation: {
		AuctionStatusApproved,
		AuctionStatusDraft, // reject returns to draft; REJECTED is an audit tag, not a status
		AuctionStatusCancelled,
	},
	AuctionStatusApproved: {
		AuctionStatusOpenForBids,
		AuctionStatusPendingValidation,
		AuctionStatusCancelled,
	},
	AuctionStatusOpenForBids: {
		AuctionStatusLiveAuction,
		AuctionStatusClosed,
		AuctionStatusSuspended,
		AuctionStatusCancelled,
	},
	AuctionStatusLiveAuction: {
		AuctionStatusClosed,
		AuctionStatusSuspended,
		AuctionStatusCancelled,
	},
	AuctionStatusSuspended: {
		AuctionStatusOpenForBids,
		AuctionStatusLiveAuction,
		AuctionStatusCancelled,
	},
	AuctionStatusClosed:    nil,
	AuctionStatusCancelled: nil,
}

var lotTransitions = map[LotStatus][]LotStatus{
	LotStatusDraft: {
		LotStatusScheduled,
		LotStatusCancelled,
		LotStatusWithdrawn,
	},
	LotStatusScheduled: {
		LotStatusOpenForBids,
		LotStatusCancelled,
		LotStatusWithdrawn,
	},
	LotStatusOpenForBids: {
		LotStatusLiveAuction,
		LotStatusCancelled,
		LotStatusWithdrawn,
	},
	LotStatusLiveAuction: {
		LotStatusSold,
		LotStatusUnsold,
		LotStatusCancelled,
	},
	LotStatusSold: {
		LotStatusClosed,
	},
	LotStatusUnsold: {
		LotStatusClosed,
		LotStatusRelisted,
	},
	LotStatusRelisted: {
		LotStatusScheduled,
	},
	LotStatusClosed:    nil,
	LotStatusCancelled: nil,
	LotStatusWithdrawn: nil,
}

// IsValidAuctionTransition reports whether from→to exists in the auction graph.
func IsValidAuctionTransition(from, to AuctionStatus) bool {
	for _, next := range auctionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidLotTransition reports whether from→to exists in the lot graph.
func IsValidLotTransition(from, to LotStatus) bool {
	for _, next := range lotTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LotStatusesTransitioningTo returns every lot status from which `to` is
// reachable in one step. Cascade operations use this to compute the source
// set for batch updates, so even bulk writes honor the transition table.
func LotStatusesTransitioningTo(to LotStatus) []LotStatus {
	var from []LotStatus
	for s, nexts := range lotTransitions {
		for _, next := range nexts {
			if next == to {
				from = append(from, s)
				break
			}
		}
	}
	return from
}

// AllAuctionStatuses lists every auction status, for table-driven checks.
func AllAuctionStatuses() []AuctionStatus {
	return []AuctionStatus{
		AuctionStatusDraft, AuctionStatusPendingValidation, AuctionStatusApproved,
		AuctionStatusOpenForBids, AuctionStatusLiveAuction, AuctionStatusSuspended,
		AuctionStatusClosed, AuctionStatusCancelled,
	}
}

// AllLotStatuses lists every lot status, for table-driven checks.
func AllLotStatuses() []LotStatus {
	return []LotStatus{
		LotStatusDraft, LotStatusScheduled, LotStatusOpenForBids, LotStatusLiveAuction,
		LotStatusSold, LotStatusUnsold, LotStatusClosed, LotStatusRelisted,
		LotStatusCancelled, LotStatusWithdrawn,
	}
}
