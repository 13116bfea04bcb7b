package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// InstrumentMeta is the per-instrument metadata an order submission needs.
type InstrumentMeta struct {
	TickSize types.TickSize
	NegRisk  bool
}

// MetadataResolver resolves tick size and the neg-risk flag, honoring
// caller-supplied overrides.
type MetadataResolver struct{}

func NewMetadataResolver() *MetadataResolver {
	return &MetadataResolver{}
}

// Resolve returns instrument metadata. When both overrides are supplied
// the network is never touched.
func (r *MetadataResolver) Resolve(ctx context.Context, sess *Session, tokenID string, overrideTick *types.TickSize, overrideNegRisk *bool) (*InstrumentMeta, error) {
	if overrideTick != nil && overrideNegRisk != nil {
		return &InstrumentMeta{TickSize: *overrideTick, NegRisk: *overrideNegRisk}, nil
	}

	meta := &InstrumentMeta{}

	if overrideTick != nil {
		meta.TickSize = *overrideTick
	} else {
		tick, err := sess.Client.GetTickSize(ctx, tokenID)
		if err != nil {
			return nil, errors.Wrap(err, "metadata fetch failed")
		}
		meta.TickSize = tick
	}

	if overrideNegRisk != nil {
		meta.NegRisk = *overrideNegRisk
	} else {
		negRisk, err := sess.Client.GetNegRisk(ctx, tokenID)
		if err != nil {
			return nil, errors.Wrap(err, "metadata fetch failed")
		}
		meta.NegRisk = negRisk
	}

	return meta, nil
}
