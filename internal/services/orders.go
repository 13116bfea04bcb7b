package services

import (
	"context"
	"encoding/json"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
)

const maxRawDetailChars = 500

// OrderSubmitter builds and submits orders, normalizing the exchange
// response into a uniform OrderResult. When NilOnError is set, failed
// submissions return nil instead of a structured result.
type OrderSubmitter struct {
	sessions   *SessionManager
	metadata   *MetadataResolver
	NilOnError bool
}

func NewOrderSubmitter(sessions *SessionManager, metadata *MetadataResolver) *OrderSubmitter {
	return &OrderSubmitter{sessions: sessions, metadata: metadata}
}

// PlaceLimitOrder submits a limit order. Defaults to GTC.
func (s *OrderSubmitter) PlaceLimitOrder(ctx context.Context, req *domain.OrderRequest) *domain.OrderResult {
	sess := s.sessions.GetSession(ctx)
	if sess == nil {
		return s.failure("missing session")
	}

	meta, err := s.metadata.Resolve(ctx, sess, req.TokenID, req.TickSize, req.NegRisk)
	if err != nil {
		return s.failure(err.Error())
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = types.OrderTypeGTC
	}

	userOrder := &types.UserOrder{
		TokenID: req.TokenID,
		Price:   req.Price,
		Size:    req.Size,
		Side:    req.Side,
	}
	options := &types.CreateOrderOptions{TickSize: meta.TickSize, NegRisk: &meta.NegRisk}

	resp, err := sess.Client.CreateAndPostOrder(ctx, userOrder, options, orderType, req.PostOnly)
	if err != nil {
		log.WithError(err).WithField("tokenID", req.TokenID).Error("limit order submission failed")
		return s.failure(err.Error())
	}
	return s.normalize(resp)
}

// PlaceMarketOrder submits a marketable order. Defaults to FOK.
func (s *OrderSubmitter) PlaceMarketOrder(ctx context.Context, req *domain.OrderRequest) *domain.OrderResult {
	sess := s.sessions.GetSession(ctx)
	if sess == nil {
		return s.failure("missing session")
	}

	meta, err := s.metadata.Resolve(ctx, sess, req.TokenID, req.TickSize, req.NegRisk)
	if err != nil {
		return s.failure(err.Error())
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = types.OrderTypeFOK
	}

	amount := req.Amount
	if req.Side == types.SideSell {
		amount = req.Size
	}
	price := req.Price
	marketOrder := &types.UserMarketOrder{
		TokenID: req.TokenID,
		Price:   &price,
		Amount:  amount,
		Side:    req.Side,
	}
	options := &types.CreateOrderOptions{TickSize: meta.TickSize, NegRisk: &meta.NegRisk}

	resp, err := sess.Client.CreateAndPostMarketOrder(ctx, marketOrder, options, orderType)
	if err != nil {
		log.WithError(err).WithField("tokenID", req.TokenID).Error("market order submission failed")
		return s.failure(err.Error())
	}
	return s.normalize(resp)
}

// normalize maps the exchange response onto OrderResult. An empty order
// identifier is always a failure even when the transport succeeded.
func (s *OrderSubmitter) normalize(resp *types.OrderResponse) *domain.OrderResult {
	if resp == nil {
		return s.failure("empty order response")
	}

	orderID := resp.ResolvedOrderID()
	status := resp.ResolvedStatus()

	if orderID == "" {
		detail := resp.ErrorMsg
		if detail == "" {
			raw, _ := json.Marshal(resp)
			detail = truncateDetail(string(raw))
		}
		log.WithField("detail", detail).Error("order rejected: no order identifier in response")
		return s.failure("order rejected: " + detail)
	}

	return &domain.OrderResult{OrderID: orderID, Status: status}
}

func (s *OrderSubmitter) failure(detail string) *domain.OrderResult {
	if s.NilOnError {
		return nil
	}
	return &domain.OrderResult{ErrorDetail: truncateDetail(detail)}
}

func truncateDetail(detail string) string {
	if len(detail) > maxRawDetailChars {
		return detail[:maxRawDetailChars]
	}
	return detail
}
