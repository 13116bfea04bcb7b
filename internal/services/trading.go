package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/ports"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

var log = logrus.WithField("component", "trading_service")

// TradingService is the facade the routing layer talks to. It wires the
// session, metadata, balance, sizing and fill components together.
type TradingService struct {
	sessions  *SessionManager
	metadata  *MetadataResolver
	balances  *BalanceReader
	submitter *OrderSubmitter
	fills     *FillTracker
}

// NewTradingService assembles the trading core. A nil factory uses the
// real CLOB client.
func NewTradingService(cfg config.TradingConfig, factory ports.ClientFactory) *TradingService {
	sessions := NewSessionManager(cfg, factory)
	metadata := NewMetadataResolver()
	return &TradingService{
		sessions:  sessions,
		metadata:  metadata,
		balances:  NewBalanceReader(sessions),
		submitter: NewOrderSubmitter(sessions, metadata),
		fills:     NewFillTracker(sessions),
	}
}

func (s *TradingService) Sessions() *SessionManager { return s.sessions }
func (s *TradingService) Balances() *BalanceReader  { return s.balances }
func (s *TradingService) Fills() *FillTracker       { return s.fills }

// ExecuteIntent validates, sizes and submits one order intent, optionally
// waiting for fills. Failures come back as a structured OrderError.
func (s *TradingService) ExecuteIntent(ctx context.Context, intent *domain.OrderIntent) (*domain.OrderOutcome, *domain.OrderError) {
	if s.sessions.GetSession(ctx) == nil {
		return nil, &domain.OrderError{Reason: "missing session", Status: "unavailable"}
	}

	var outcome *domain.OrderOutcome
	var orderErr *domain.OrderError
	if intent.Market {
		outcome, orderErr = s.executeMarket(ctx, intent)
	} else {
		outcome, orderErr = s.executeLimit(ctx, intent)
	}
	if orderErr != nil {
		return nil, orderErr
	}

	if intent.AwaitFill {
		opts := DefaultFillWaitOptions()
		if intent.MaxWaitMs > 0 {
			opts.MaxWait = time.Duration(intent.MaxWaitMs) * time.Millisecond
		}
		if intent.PollIntervalMs > 0 {
			opts.PollInterval = time.Duration(intent.PollIntervalMs) * time.Millisecond
		}
		opts.PreferTrades = intent.Market
		outcome.Fill = s.fills.FetchOrderFills(ctx, outcome.OrderID, opts)
	}
	return outcome, nil
}

func (s *TradingService) executeLimit(ctx context.Context, intent *domain.OrderIntent) (*domain.OrderOutcome, *domain.OrderError) {
	if err := PreflightLimit(intent.Size, intent.Price); err != nil {
		return nil, validationError(err, types.AssetTypeCollateral, nil)
	}

	result := s.submitter.PlaceLimitOrder(ctx, &domain.OrderRequest{
		TokenID:   intent.TokenID,
		Side:      intent.Side,
		Kind:      domain.OrderKindLimit,
		Price:     intent.Price,
		Size:      intent.Size,
		OrderType: intent.OrderType,
		TickSize:  intent.TickSize,
		NegRisk:   intent.NegRisk,
		PostOnly:  intent.PostOnly,
	})
	if !result.Accepted() {
		return nil, submissionError(result)
	}

	return &domain.OrderOutcome{
		OrderID:         result.OrderID,
		Status:          result.Status,
		RequestedShares: intent.Size,
		SubmittedShares: intent.Size,
	}, nil
}

func (s *TradingService) executeMarket(ctx context.Context, intent *domain.OrderIntent) (*domain.OrderOutcome, *domain.OrderError) {
	if !PriceInTradableBand(intent.Price) {
		return nil, &domain.OrderError{
			Reason: "price outside tradable band",
			Status: "rejected",
		}
	}

	if intent.Side == types.SideBuy {
		return s.executeMarketBuy(ctx, intent)
	}
	return s.executeMarketSell(ctx, intent)
}

func (s *TradingService) executeMarketBuy(ctx context.Context, intent *domain.OrderIntent) (*domain.OrderOutcome, *domain.OrderError) {
	balance := s.balances.CollateralBalance(ctx)
	if balance == nil {
		return nil, &domain.OrderError{Reason: "collateral balance unavailable", Status: "rejected"}
	}

	amount, err := PreflightMarketBuy(intent.Amount, balance.Available, intent.Price)
	if err != nil {
		return nil, validationError(err, types.AssetTypeCollateral, &balance.Available)
	}

	result := s.submitter.PlaceMarketOrder(ctx, &domain.OrderRequest{
		TokenID:   intent.TokenID,
		Side:      types.SideBuy,
		Kind:      domain.OrderKindMarket,
		Price:     intent.Price,
		Amount:    amount,
		OrderType: intent.OrderType,
		TickSize:  intent.TickSize,
		NegRisk:   intent.NegRisk,
	})
	if !result.Accepted() {
		return nil, submissionError(result)
	}

	return &domain.OrderOutcome{
		OrderID:            result.OrderID,
		Status:             result.Status,
		RequestedAmount:    intent.Amount,
		SubmittedAmount:    amount,
		Available:          &balance.Available,
		AvailableAssetType: types.AssetTypeCollateral,
	}, nil
}

func (s *TradingService) executeMarketSell(ctx context.Context, intent *domain.OrderIntent) (*domain.OrderOutcome, *domain.OrderError) {
	balance := s.balances.ConditionalBalance(ctx, intent.TokenID)
	if balance == nil {
		return nil, &domain.OrderError{Reason: "conditional balance unavailable", Status: "rejected"}
	}

	shares, err := PreflightMarketSell(intent.Size, balance.Available, intent.Price)
	if err != nil {
		return nil, validationError(err, types.AssetTypeConditional, &balance.Available)
	}

	result := s.submitter.PlaceMarketOrder(ctx, &domain.OrderRequest{
		TokenID:   intent.TokenID,
		Side:      types.SideSell,
		Kind:      domain.OrderKindMarket,
		Price:     intent.Price,
		Size:      shares,
		OrderType: intent.OrderType,
		TickSize:  intent.TickSize,
		NegRisk:   intent.NegRisk,
	})
	if !result.Accepted() {
		return nil, submissionError(result)
	}

	return &domain.OrderOutcome{
		OrderID:            result.OrderID,
		Status:             result.Status,
		RequestedShares:    intent.Size,
		SubmittedShares:    shares,
		Available:          &balance.Available,
		AvailableAssetType: types.AssetTypeConditional,
	}, nil
}

// CancelOrder cancels by ID. Any failure logs and reports false.
func (s *TradingService) CancelOrder(ctx context.Context, orderID string) bool {
	sess := s.sessions.GetSession(ctx)
	if sess == nil {
		return false
	}
	resp, err := sess.Client.CancelOrder(ctx, orderID)
	if err != nil {
		log.WithError(err).WithField("orderID", orderID).Warn("cancel order failed")
		return false
	}
	return resp == nil || resp.ErrorMsg == ""
}

// FetchOrder returns the current order record, or nil on any failure.
func (s *TradingService) FetchOrder(ctx context.Context, orderID string) *types.OpenOrder {
	sess := s.sessions.GetSession(ctx)
	if sess == nil {
		return nil
	}
	order, err := sess.Client.GetOrder(ctx, orderID)
	if err != nil {
		log.WithError(err).WithField("orderID", orderID).Warn("fetch order failed")
		return nil
	}
	return order
}

func validationError(err error, assetType types.AssetType, available *float64) *domain.OrderError {
	oe := &domain.OrderError{
		Reason:             err.Error(),
		Status:             "rejected",
		Available:          available,
		AvailableAssetType: assetType,
	}
	if ve, ok := err.(*ValidationError); ok {
		oe.RequestedAmount = ve.Requested
		oe.SubmittedAmount = ve.Adjusted
	}
	return oe
}

func submissionError(result *domain.OrderResult) *domain.OrderError {
	reason := "order submission failed"
	if result != nil && result.ErrorDetail != "" {
		reason = result.ErrorDetail
	}
	status := "failed"
	if result != nil && result.Status != "" {
		status = result.Status
	}
	return &domain.OrderError{Reason: reason, Status: status}
}
