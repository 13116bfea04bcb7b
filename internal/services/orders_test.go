package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

func newTestSubmitter(f *fakeExchange) *OrderSubmitter {
	return NewOrderSubmitter(newTestSessions(f), NewMetadataResolver())
}

func limitRequest() *domain.OrderRequest {
	return &domain.OrderRequest{
		TokenID: "token-1",
		Side:    types.SideBuy,
		Kind:    domain.OrderKindLimit,
		Price:   0.5,
		Size:    10,
	}
}

func TestPlaceLimitOrderAccepted(t *testing.T) {
	fake := &fakeExchange{}
	submitter := newTestSubmitter(fake)

	result := submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if result == nil {
		t.Fatal("result = nil, want accepted order")
	}
	if !result.Accepted() {
		t.Fatalf("Accepted() = false, detail %q", result.ErrorDetail)
	}
	if result.OrderID != "order-1" {
		t.Errorf("orderID = %q, want order-1", result.OrderID)
	}
}

func TestPlaceLimitOrderDefaultsToGTC(t *testing.T) {
	var got types.OrderType
	fake := &fakeExchange{
		postOrderFn: func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
			got = orderType
			return &types.OrderResponse{Success: true, OrderID: "order-1"}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if got != types.OrderTypeGTC {
		t.Errorf("orderType = %q, want %q", got, types.OrderTypeGTC)
	}
}

func TestPlaceMarketOrderDefaultsToFOK(t *testing.T) {
	var got types.OrderType
	fake := &fakeExchange{
		postMarketFn: func(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
			got = orderType
			return &types.OrderResponse{Success: true, OrderID: "order-1"}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	submitter.PlaceMarketOrder(context.Background(), &domain.OrderRequest{
		TokenID: "token-1",
		Side:    types.SideBuy,
		Kind:    domain.OrderKindMarket,
		Price:   0.5,
		Amount:  20,
	})
	if got != types.OrderTypeFOK {
		t.Errorf("orderType = %q, want %q", got, types.OrderTypeFOK)
	}
}

func TestPlaceMarketSellUsesShares(t *testing.T) {
	var gotAmount float64
	fake := &fakeExchange{
		postMarketFn: func(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
			gotAmount = order.Amount
			return &types.OrderResponse{Success: true, OrderID: "order-1"}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	submitter.PlaceMarketOrder(context.Background(), &domain.OrderRequest{
		TokenID: "token-1",
		Side:    types.SideSell,
		Kind:    domain.OrderKindMarket,
		Price:   0.5,
		Size:    12,
		Amount:  99, // ignored for sells
	})
	if gotAmount != 12 {
		t.Errorf("market sell amount = %v, want shares 12", gotAmount)
	}
}

func TestPlaceOrderOverridesSkipMetadataFetch(t *testing.T) {
	fake := &fakeExchange{
		tickFn: func(ctx context.Context, tokenID string) (types.TickSize, error) {
			t.Fatal("tick size fetched despite override")
			return "", nil
		},
		negRiskFn: func(ctx context.Context, tokenID string) (bool, error) {
			t.Fatal("neg risk fetched despite override")
			return false, nil
		},
	}
	submitter := newTestSubmitter(fake)

	tick := types.TickSize01
	negRisk := true
	req := limitRequest()
	req.TickSize = &tick
	req.NegRisk = &negRisk

	result := submitter.PlaceLimitOrder(context.Background(), req)
	if result == nil || !result.Accepted() {
		t.Fatalf("expected accepted order, got %+v", result)
	}
}

func TestNormalizeEmptyOrderIDIsFailure(t *testing.T) {
	fake := &fakeExchange{
		postOrderFn: func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
			return &types.OrderResponse{Success: true, ErrorMsg: "not enough balance / allowance"}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	result := submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if result == nil {
		t.Fatal("result = nil, want structured failure")
	}
	if result.Accepted() {
		t.Fatal("Accepted() = true for response without an order identifier")
	}
	if !strings.Contains(result.ErrorDetail, "order rejected") {
		t.Errorf("detail = %q, want order rejected prefix", result.ErrorDetail)
	}
	if !strings.Contains(result.ErrorDetail, "not enough balance") {
		t.Errorf("detail = %q, want exchange error message", result.ErrorDetail)
	}
}

func TestNormalizeTruncatesRawDetail(t *testing.T) {
	fake := &fakeExchange{
		postOrderFn: func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
			return &types.OrderResponse{ErrorMsg: strings.Repeat("x", 2000)}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	result := submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if result == nil || result.Accepted() {
		t.Fatalf("expected failure, got %+v", result)
	}
	if len(result.ErrorDetail) > maxRawDetailChars {
		t.Errorf("detail length = %d, want <= %d", len(result.ErrorDetail), maxRawDetailChars)
	}
}

func TestNormalizeAliasFields(t *testing.T) {
	fake := &fakeExchange{
		postOrderFn: func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
			return &types.OrderResponse{OrderIDAlt: "alt-7", State: "matched"}, nil
		},
	}
	submitter := newTestSubmitter(fake)

	result := submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if result == nil || !result.Accepted() {
		t.Fatalf("expected accepted order, got %+v", result)
	}
	if result.OrderID != "alt-7" {
		t.Errorf("orderID = %q, want alt-7 from alias field", result.OrderID)
	}
	if result.Status != "matched" {
		t.Errorf("status = %q, want matched from alias field", result.Status)
	}
}

func TestNilOnErrorReturnsNil(t *testing.T) {
	fake := &fakeExchange{
		postOrderFn: func(ctx context.Context, order *types.UserOrder, options *types.CreateOrderOptions, orderType types.OrderType, postOnly bool) (*types.OrderResponse, error) {
			return nil, errors.New("transport down")
		},
	}
	submitter := newTestSubmitter(fake)
	submitter.NilOnError = true

	if result := submitter.PlaceLimitOrder(context.Background(), limitRequest()); result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
}

func TestPlaceOrderMissingSession(t *testing.T) {
	submitter := NewOrderSubmitter(
		NewSessionManager(config.TradingConfig{Enabled: false}, nil),
		NewMetadataResolver(),
	)

	result := submitter.PlaceLimitOrder(context.Background(), limitRequest())
	if result == nil {
		t.Fatal("result = nil, want structured failure")
	}
	if result.Accepted() {
		t.Fatal("Accepted() = true without a session")
	}
	if !strings.Contains(result.ErrorDetail, "missing session") {
		t.Errorf("detail = %q, want missing session", result.ErrorDetail)
	}
}
