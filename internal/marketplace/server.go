// Package marketplace assembles the HTTP surface over the task ledger.
package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/handlers"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
	"github.com/Mateiul123/Blockchainworkapp/pkg/content"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

type Server struct {
	router *gin.Engine
	ledger *ledger.TaskLedger
	logger logging.Logger
	srv    *http.Server
}

func NewServer(l *ledger.TaskLedger, resolver content.Resolver, logger logging.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		ledger: l,
		logger: logger,
	}
	s.registerRoutes(resolver)
	return s
}

func (s *Server) registerRoutes(resolver content.Resolver) {
	handler := handlers.NewHandler(s.ledger, resolver, s.logger)

	s.router.GET("/health", handler.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")

	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks/:id", handler.GetTask)
	api.GET("/tasks/:id/applicants", handler.GetApplicants)
	api.POST("/tasks/:id/apply", handler.ApplyToTask)
	api.POST("/tasks/:id/accept", handler.AcceptWorker)
	api.POST("/tasks/:id/submit", handler.SubmitWork)
	api.POST("/tasks/:id/approve", handler.ApproveWork)
	api.POST("/tasks/:id/auto-approve", handler.AutoApprove)
	api.POST("/tasks/:id/cancel", handler.CancelTask)
	api.POST("/tasks/:id/expire", handler.ExpireTask)
	api.POST("/tasks/:id/rate-worker", handler.RateWorker)
	api.POST("/tasks/:id/rate-creator", handler.RateCreator)
	api.GET("/stats", handler.GetTotalTasks)

	api.GET("/creators/:address/tasks", handler.GetTasksByCreator)
	api.GET("/workers/:address/tasks", handler.GetTasksByWorker)
	api.GET("/balances/:address", handler.GetPendingBalance)
	api.POST("/withdrawals", handler.Withdraw)
	api.GET("/ratings/:address", handler.GetRating)
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, port string) error {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"},
	}).Handler(s.router)

	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metrics.StartUptimeTracking()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Marketplace API listening on port %s", port)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("Marketplace API stopped")
	return nil
}
