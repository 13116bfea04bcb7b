package services

import (
	"context"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
)

// BalanceReader queries live balance and allowance. Every failure is soft:
// logged and reported as nil, never an error.
type BalanceReader struct {
	sessions *SessionManager
}

func NewBalanceReader(sessions *SessionManager) *BalanceReader {
	return &BalanceReader{sessions: sessions}
}

// CollateralBalance returns the wallet's USDC balance, or nil.
func (r *BalanceReader) CollateralBalance(ctx context.Context) *domain.Balance {
	return r.fetch(ctx, &types.BalanceAllowanceParams{AssetType: types.AssetTypeCollateral})
}

// ConditionalBalance returns the share balance for one token, or nil.
func (r *BalanceReader) ConditionalBalance(ctx context.Context, tokenID string) *domain.Balance {
	return r.fetch(ctx, &types.BalanceAllowanceParams{
		AssetType: types.AssetTypeConditional,
		TokenID:   &tokenID,
	})
}

func (r *BalanceReader) fetch(ctx context.Context, params *types.BalanceAllowanceParams) *domain.Balance {
	sess := r.sessions.GetSession(ctx)
	if sess == nil {
		return nil
	}

	resp, err := sess.Client.GetBalanceAllowance(ctx, params)
	if err != nil {
		log.WithError(err).WithField("assetType", params.AssetType).Warn("balance fetch failed")
		return nil
	}

	balanceRaw := resp.Balance
	if balanceRaw == "" {
		balanceRaw = resp.CollateralBalance
	}
	allowanceRaw := resp.Allowance
	if allowanceRaw == "" {
		allowanceRaw = resp.CollateralAllowance
	}

	balance, err := parseScaledAmount(balanceRaw)
	if err != nil {
		log.WithError(err).WithField("assetType", params.AssetType).Warn("balance parse failed")
		balance = 0
	}
	allowance, err := parseScaledAmount(allowanceRaw)
	if err != nil {
		allowance = 0
	}

	return &domain.Balance{
		Balance:   balance,
		Allowance: allowance,
		Available: max(finiteOrZero(balance), 0),
		AssetType: params.AssetType,
	}
}
