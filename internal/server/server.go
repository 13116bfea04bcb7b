package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/internal/services"
)

var log = logrus.WithField("component", "http_server")

// Server exposes the trading core over HTTP. Route handlers translate
// structured results into transport status codes; all trading logic stays
// in the services layer.
type Server struct {
	trading *services.TradingService
	http    *http.Server
}

func New(listen string, trading *services.TradingService) *Server {
	s := &Server{trading: trading}
	s.http = &http.Server{
		Addr:              listen,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	api.POST("/orders", s.handlePlaceOrder)
	api.GET("/orders/:orderID", s.handleGetOrder)
	api.GET("/orders/:orderID/fills", s.handleGetFills)
	api.DELETE("/orders/:orderID", s.handleCancelOrder)
	api.GET("/balance", s.handleGetBalance)

	return r
}

// requestID tags every request for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.WithField("addr", s.http.Addr).Info("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
