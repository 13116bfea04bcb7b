package services

import (
	"context"
	"time"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
)

// FillStatusUnknown is reported when polling exhausts without ever
// obtaining an order snapshot.
const FillStatusUnknown = "unknown"

const (
	defaultFillMaxWait      = 60 * time.Second
	defaultFillPollInterval = 1500 * time.Millisecond
)

// DefaultFillWaitOptions is the standard polling budget.
func DefaultFillWaitOptions() FillWaitOptions {
	return FillWaitOptions{
		MaxWait:      defaultFillMaxWait,
		PollInterval: defaultFillPollInterval,
	}
}

// FillWaitOptions bounds the polling loop. A zero MaxWait runs exactly
// one iteration.
type FillWaitOptions struct {
	MaxWait      time.Duration
	PollInterval time.Duration

	// PreferTrades makes trade-derived fills authoritative over the
	// order's own matched-size fields on timeout. Used for market orders.
	PreferTrades bool
}

// FillTracker polls order state and trades until a fill is observed, the
// order leaves the book, or the wait budget runs out.
type FillTracker struct {
	sessions *SessionManager
}

func NewFillTracker(sessions *SessionManager) *FillTracker {
	return &FillTracker{sessions: sessions}
}

// computeFillFromTrades aggregates executed size and the size-weighted
// average price. AvgPrice is nil when nothing filled.
func computeFillFromTrades(trades []domain.TradeFill) (float64, *float64) {
	var filledSize, notional float64
	for _, t := range trades {
		filledSize += t.Size
		notional += t.Size * t.Price
	}
	if filledSize <= 0 {
		return 0, nil
	}
	avg := notional / filledSize
	return filledSize, &avg
}

// FetchOrderFills polls until a resolving condition or timeout and returns
// the best snapshot observed. It never returns an error: a tracker that
// saw nothing reports status "unknown" with zero fill.
func (t *FillTracker) FetchOrderFills(ctx context.Context, orderID string, opts FillWaitOptions) *domain.FillSnapshot {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultFillPollInterval
	}

	sess := t.sessions.GetSession(ctx)
	if sess == nil {
		return &domain.FillSnapshot{Status: FillStatusUnknown}
	}

	deadline := time.Now().Add(opts.MaxWait)
	var lastOrder *types.OpenOrder

	for {
		order, err := sess.Client.GetOrder(ctx, orderID)
		if err != nil {
			log.WithError(err).WithField("orderID", orderID).Debug("order fetch failed, retrying")
		} else if order != nil {
			lastOrder = order

			trades := t.fetchTrades(ctx, sess, order)
			filledSize, avgPrice := computeFillFromTrades(trades)

			// Stop as soon as something filled or the order left the book.
			if filledSize > 0 || order.Status != types.OrderStatusLive {
				return &domain.FillSnapshot{
					Status:     order.Status,
					FilledSize: filledSize,
					AvgPrice:   avgPrice,
					Trades:     trades,
					RawOrder:   order,
				}
			}
		}

		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return t.timeoutSnapshot(lastOrder, opts.PreferTrades)
		case <-time.After(opts.PollInterval):
		}
	}

	return t.timeoutSnapshot(lastOrder, opts.PreferTrades)
}

// fetchTrades resolves each associated trade individually. A single trade
// fetch failure is logged and skipped, never aborting the batch.
func (t *FillTracker) fetchTrades(ctx context.Context, sess *Session, order *types.OpenOrder) []domain.TradeFill {
	if len(order.AssociateTrades) == 0 {
		return nil
	}

	fills := make([]domain.TradeFill, 0, len(order.AssociateTrades))
	for _, tradeID := range order.AssociateTrades {
		id := tradeID
		trades, err := sess.Client.GetTrades(ctx, &types.TradeParams{ID: &id})
		if err != nil {
			log.WithError(err).WithField("tradeID", tradeID).Debug("trade fetch failed, skipping")
			continue
		}
		for _, trade := range trades {
			size, err := parseFiniteFloat(trade.Size)
			if err != nil || size <= 0 {
				continue
			}
			price, err := parseFiniteFloat(trade.Price)
			if err != nil || price <= 0 {
				continue
			}
			fills = append(fills, domain.TradeFill{Size: size, Price: price})
		}
	}
	return fills
}

// timeoutSnapshot is the best-effort result when polling exhausts. Without
// a snapshot the status is unknown; with one, fall back to the order's own
// matched-size and price fields unless trades are preferred.
func (t *FillTracker) timeoutSnapshot(order *types.OpenOrder, preferTrades bool) *domain.FillSnapshot {
	if order == nil {
		return &domain.FillSnapshot{Status: FillStatusUnknown}
	}
	if preferTrades {
		return &domain.FillSnapshot{Status: order.Status, RawOrder: order}
	}

	snapshot := &domain.FillSnapshot{Status: order.Status, RawOrder: order}
	matched, err := parseFiniteFloat(order.SizeMatched)
	if err != nil || matched <= 0 {
		return snapshot
	}
	price, err := parseFiniteFloat(order.Price)
	if err != nil || price <= 0 {
		snapshot.FilledSize = matched
		return snapshot
	}
	snapshot.FilledSize = matched
	snapshot.AvgPrice = &price
	return snapshot
}
