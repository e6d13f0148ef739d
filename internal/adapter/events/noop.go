// Package events holds broadcast-sink implementations shared by wiring code.
package events

import (
	"context"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// NoopSink discards all events. Used when broadcasting is disabled.
type NoopSink struct{}

func (NoopSink) EmitBid(context.Context, domain.BidEvent) error             { return nil }
func (NoopSink) EmitSoftClose(context.Context, domain.SoftCloseEvent) error { return nil }
