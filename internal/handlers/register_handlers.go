package handlers

import (
	"fmt"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	ledger portssvc.LedgerSvcFacade,
	db HealthChecker,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	registerHomeRoutes(r, db)

	return setupAPIV1Routes(r, cfg, ledger)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	ledger portssvc.LedgerSvcFacade,
) error {
	v1 := r.Group("/api/v1")

	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		v1.Use(middleware.RateLimit(limiter))
	}

	if cfg.AuthEnabled {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	} else {
		v1.Use(middleware.AnonymousMiddleware())
	}

	registerAccountRoutes(v1, ledger, cfg.CurrencyScale)
	registerTagRoutes(v1, ledger)
	registerJournalRoutes(v1, ledger, cfg.CurrencyScale)
	registerFiscalYearRoutes(v1, ledger)
	return nil
}
