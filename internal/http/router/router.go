package router

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-remodeling/proposal-api/internal/auth"
	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/crestline-remodeling/proposal-api/internal/database"
	"github.com/crestline-remodeling/proposal-api/internal/http/handler"
	"github.com/crestline-remodeling/proposal-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/crestline-remodeling/proposal-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	templateHandler *handler.TemplateHandler
	proposalHandler *handler.ProposalHandler
	contractHandler *handler.ContractHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	templateHandler *handler.TemplateHandler,
	proposalHandler *handler.ProposalHandler,
	contractHandler *handler.ContractHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		templateHandler: templateHandler,
		proposalHandler: proposalHandler,
		contractHandler: contractHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with connection pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)

		// Templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", rt.templateHandler.List)
			r.Post("/", rt.templateHandler.Create)
			r.Get("/{id}", rt.templateHandler.GetByID)
			r.Put("/{id}", rt.templateHandler.Update)
			r.Delete("/{id}", rt.templateHandler.Delete)

			// Sub-resources
			r.Get("/{id}/categories", rt.templateHandler.ListCategories)
			r.Post("/{id}/categories", rt.templateHandler.AddCategory)
			r.Get("/{id}/variables", rt.templateHandler.ListVariables)
			r.Post("/{id}/variables", rt.templateHandler.AddVariable)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Put("/{id}", rt.templateHandler.UpdateCategory)
			r.Delete("/{id}", rt.templateHandler.DeleteCategory)
			r.Get("/{id}/elements", rt.templateHandler.ListElements)
			r.Post("/{id}/elements", rt.templateHandler.AddElement)
		})

		// Elements
		r.Route("/elements", func(r chi.Router) {
			r.Put("/{id}", rt.templateHandler.UpdateElement)
			r.Delete("/{id}", rt.templateHandler.DeleteElement)
		})

		// Variables
		r.Route("/variables", func(r chi.Router) {
			r.Put("/{id}", rt.templateHandler.UpdateVariable)
			r.Delete("/{id}", rt.templateHandler.DeleteVariable)
		})

		// Proposals
		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", rt.proposalHandler.List)
			r.Post("/", rt.proposalHandler.Create)
			r.Post("/from-template", rt.proposalHandler.CreateFromTemplate)
			r.Get("/{id}", rt.proposalHandler.GetByID)
			r.Put("/{id}", rt.proposalHandler.Update)
			r.Delete("/{id}", rt.proposalHandler.Delete)

			// Structure
			r.Get("/{id}/categories", rt.proposalHandler.ListCategories)
			r.Get("/{id}/variables", rt.proposalHandler.ListVariables)

			// Values
			r.Get("/{id}/variable-values", rt.proposalHandler.ListVariableValues)
			r.Post("/{id}/variable-values", rt.proposalHandler.SetVariableValues)
			r.Get("/{id}/element-values", rt.proposalHandler.ListElementValues)
			r.Post("/{id}/element-values", rt.proposalHandler.UpdateElementValues)

			// Template synchronization
			r.Post("/{id}/sync", rt.proposalHandler.Sync)

			// Contracts
			r.Get("/{id}/contracts", rt.contractHandler.ListByProposal)
			r.Post("/{id}/contracts", rt.contractHandler.Generate)
			r.Get("/{id}/contracts/active", rt.contractHandler.GetActive)
		})

		// Contracts
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", rt.contractHandler.List)
			r.Get("/{id}", rt.contractHandler.GetByID)
			r.Delete("/{id}", rt.contractHandler.Delete)
			r.Post("/{id}/sign/{role}", rt.contractHandler.Sign)
			r.Get("/{id}/signature/{role}", rt.contractHandler.GetSignature)
		})
	})

	return r
}
