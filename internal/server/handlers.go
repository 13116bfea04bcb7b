package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/domain"
	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/services"
)

// handlePlaceOrder validates the intent body and runs it through the
// trading core. Validation failures map to 400, a missing session to 503
// and exchange rejections to 502.
func (s *Server) handlePlaceOrder(c *gin.Context) {
	var intent domain.OrderIntent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := validateIntent(&intent); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	outcome, orderErr := s.trading.ExecuteIntent(c.Request.Context(), &intent)
	if orderErr != nil {
		c.JSON(statusForOrderError(orderErr), orderErr)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func validateIntent(intent *domain.OrderIntent) string {
	if intent.TokenID == "" {
		return "tokenID is required"
	}
	switch intent.Side {
	case types.SideBuy, types.SideSell:
	default:
		return "side must be BUY or SELL"
	}
	if intent.Price <= 0 {
		return "price must be positive"
	}
	if intent.Market && intent.Side == types.SideBuy {
		if intent.Amount <= 0 {
			return "amount must be positive for market buys"
		}
	} else if intent.Size <= 0 {
		return "size must be positive"
	}
	return ""
}

func statusForOrderError(orderErr *domain.OrderError) int {
	switch orderErr.Status {
	case "unavailable":
		return http.StatusServiceUnavailable
	case "rejected":
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleGetOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	order := s.trading.FetchOrder(c.Request.Context(), orderID)
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) handleGetFills(c *gin.Context) {
	orderID := c.Param("orderID")
	opts := s.fillOptionsFromQuery(c)
	snapshot := s.trading.Fills().FetchOrderFills(c.Request.Context(), orderID, opts)
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) fillOptionsFromQuery(c *gin.Context) services.FillWaitOptions {
	opts := services.DefaultFillWaitOptions()
	if v := c.Query("maxWaitMs"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms >= 0 {
			opts.MaxWait = time.Duration(ms) * time.Millisecond
		}
	}
	if v := c.Query("pollIntervalMs"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			opts.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}
	opts.PreferTrades = c.Query("preferTrades") == "true"
	return opts
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	if s.trading.CancelOrder(c.Request.Context(), orderID) {
		c.JSON(http.StatusOK, gin.H{"canceled": true})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"canceled": false})
}

// handleGetBalance returns collateral by default, or the conditional
// balance when a tokenID query parameter is given.
func (s *Server) handleGetBalance(c *gin.Context) {
	var balance *domain.Balance
	if tokenID := c.Query("tokenID"); tokenID != "" {
		balance = s.trading.Balances().ConditionalBalance(c.Request.Context(), tokenID)
	} else {
		balance = s.trading.Balances().CollateralBalance(c.Request.Context())
	}
	if balance == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "balance unavailable"})
		return
	}
	c.JSON(http.StatusOK, balance)
}
