package services

import (
	"context"
	"math"
	"testing"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/pkg/config"
)

func newTestTrading(f *fakeExchange) *TradingService {
	return NewTradingService(enabledConfig(), fakeFactory(f))
}

func TestExecuteIntentMissingSession(t *testing.T) {
	trading := NewTradingService(config.TradingConfig{Enabled: false}, nil)

	outcome, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideBuy, Price: 0.5, Size: 10,
	})
	if outcome != nil {
		t.Errorf("outcome = %+v, want nil", outcome)
	}
	if orderErr == nil || orderErr.Status != "unavailable" {
		t.Fatalf("orderErr = %+v, want status unavailable", orderErr)
	}
}

func TestExecuteMarketBuyCapsToBalance(t *testing.T) {
	var submitted float64
	fake := &fakeExchange{
		balanceFn: func(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
			return &types.BalanceAllowanceResponse{Balance: "20505000", Allowance: "20505000"}, nil
		},
		postMarketFn: func(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
			submitted = order.Amount
			return &types.OrderResponse{Success: true, OrderID: "order-1", Status: "matched"}, nil
		},
	}
	trading := newTestTrading(fake)

	outcome, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideBuy, Market: true, Price: 0.5, Amount: 50,
	})
	if orderErr != nil {
		t.Fatalf("orderErr = %+v", orderErr)
	}
	if math.Abs(submitted-20.50) > 1e-9 {
		t.Errorf("submitted amount = %v, want 20.50", submitted)
	}
	if outcome.RequestedAmount != 50 {
		t.Errorf("requestedAmount = %v, want 50", outcome.RequestedAmount)
	}
	if math.Abs(outcome.SubmittedAmount-20.50) > 1e-9 {
		t.Errorf("submittedAmount = %v, want 20.50", outcome.SubmittedAmount)
	}
	if outcome.Available == nil || math.Abs(*outcome.Available-20.505) > 1e-9 {
		t.Errorf("available = %v, want 20.505", outcome.Available)
	}
}

func TestExecuteMarketSellAdjustsDustToSellAll(t *testing.T) {
	var submitted float64
	fake := &fakeExchange{
		balanceFn: func(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
			return &types.BalanceAllowanceResponse{Balance: "10000000", Allowance: "10000000"}, nil
		},
		postMarketFn: func(ctx context.Context, order *types.UserMarketOrder, options *types.CreateOrderOptions, orderType types.OrderType) (*types.OrderResponse, error) {
			submitted = order.Amount
			return &types.OrderResponse{Success: true, OrderID: "order-1", Status: "matched"}, nil
		},
	}
	trading := newTestTrading(fake)

	// Selling 8 of 10 at 0.5 leaves 2 unsellable shares behind, so the
	// whole position goes.
	outcome, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideSell, Market: true, Price: 0.5, Size: 8,
	})
	if orderErr != nil {
		t.Fatalf("orderErr = %+v", orderErr)
	}
	if submitted != 10 {
		t.Errorf("submitted shares = %v, want 10", submitted)
	}
	if outcome.RequestedShares != 8 || outcome.SubmittedShares != 10 {
		t.Errorf("shares = %v/%v, want 8/10", outcome.RequestedShares, outcome.SubmittedShares)
	}
	if outcome.AvailableAssetType != types.AssetTypeConditional {
		t.Errorf("assetType = %q, want conditional", outcome.AvailableAssetType)
	}
}

func TestExecuteMarketSellTooSmallRejected(t *testing.T) {
	fake := &fakeExchange{
		balanceFn: func(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
			return &types.BalanceAllowanceResponse{Balance: "3000000", Allowance: "3000000"}, nil
		},
	}
	trading := newTestTrading(fake)

	outcome, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideSell, Market: true, Price: 0.5, Size: 3,
	})
	if outcome != nil {
		t.Errorf("outcome = %+v, want nil", outcome)
	}
	if orderErr == nil {
		t.Fatal("orderErr = nil, want rejection")
	}
	if orderErr.Status != "rejected" {
		t.Errorf("status = %q, want rejected", orderErr.Status)
	}
	if orderErr.RequestedAmount != 3 || orderErr.SubmittedAmount != 3 {
		t.Errorf("requested/adjusted = %v/%v, want 3/3", orderErr.RequestedAmount, orderErr.SubmittedAmount)
	}
	if orderErr.Available == nil || *orderErr.Available != 3 {
		t.Errorf("available = %v, want 3", orderErr.Available)
	}
}

func TestExecuteMarketPriceOutsideBand(t *testing.T) {
	trading := newTestTrading(&fakeExchange{})

	_, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideBuy, Market: true, Price: 0.995, Amount: 20,
	})
	if orderErr == nil || orderErr.Status != "rejected" {
		t.Fatalf("orderErr = %+v, want rejected", orderErr)
	}
}

func TestExecuteIntentAwaitFill(t *testing.T) {
	order := &types.OpenOrder{
		ID:          "order-1",
		Status:      types.OrderStatusLive,
		SizeMatched: "10",
		Price:       "0.5",
	}
	fake := &fakeExchange{
		getOrderFn: func(ctx context.Context, orderID string) (*types.OpenOrder, error) {
			return order, nil
		},
	}
	trading := newTestTrading(fake)

	outcome, orderErr := trading.ExecuteIntent(context.Background(), &domain.OrderIntent{
		TokenID: "t1", Side: types.SideBuy, Price: 0.5, Size: 10,
		AwaitFill: true, MaxWaitMs: 1, PollIntervalMs: 1,
	})
	if orderErr != nil {
		t.Fatalf("orderErr = %+v", orderErr)
	}
	if outcome.Fill == nil {
		t.Fatal("fill = nil, want snapshot")
	}
	if outcome.Fill.FilledSize != 10 {
		t.Errorf("filledSize = %v, want 10 from order fields", outcome.Fill.FilledSize)
	}
}

func TestCancelOrder(t *testing.T) {
	trading := newTestTrading(&fakeExchange{})
	if !trading.CancelOrder(context.Background(), "o1") {
		t.Error("CancelOrder = false, want true")
	}

	failing := newTestTrading(&fakeExchange{
		cancelFn: func(ctx context.Context, orderID string) (*types.OrderResponse, error) {
			return &types.OrderResponse{ErrorMsg: "order not found"}, nil
		},
	})
	if failing.CancelOrder(context.Background(), "o1") {
		t.Error("CancelOrder = true for error response, want false")
	}
}

func TestFetchOrder(t *testing.T) {
	fake := &fakeExchange{
		getOrderFn: func(ctx context.Context, orderID string) (*types.OpenOrder, error) {
			return &types.OpenOrder{ID: orderID, Status: "matched"}, nil
		},
	}
	trading := newTestTrading(fake)

	order := trading.FetchOrder(context.Background(), "o1")
	if order == nil || order.ID != "o1" {
		t.Fatalf("order = %+v, want o1", order)
	}

	missing := newTestTrading(&fakeExchange{})
	if order := missing.FetchOrder(context.Background(), "o1"); order != nil {
		t.Errorf("order = %+v, want nil on fetch failure", order)
	}
}
