// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/event-budget/backend/internal/integration/entrypoint/controller"
	"github.com/event-budget/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	authController           *controller.AuthController
	structureController      *controller.StructureController
	budgetController         *controller.BudgetController
	itemizationController    *controller.ItemizationController
	contingencyController    *controller.ContingencyController
	trackingController       *controller.TrackingController
	forecastController       *controller.ForecastController
	reallocationController   *controller.ReallocationController
	costControlController    *controller.CostControlController
	reconciliationController *controller.ReconciliationController
	loginRateLimiter         *middleware.RateLimiter
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	structureController *controller.StructureController,
	budgetController *controller.BudgetController,
	itemizationController *controller.ItemizationController,
	contingencyController *controller.ContingencyController,
	trackingController *controller.TrackingController,
	forecastController *controller.ForecastController,
	reallocationController *controller.ReallocationController,
	costControlController *controller.CostControlController,
	reconciliationController *controller.ReconciliationController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		authController:           authController,
		structureController:      structureController,
		budgetController:         budgetController,
		itemizationController:    itemizationController,
		contingencyController:    contingencyController,
		trackingController:       trackingController,
		forecastController:       forecastController,
		reallocationController:   reallocationController,
		costControlController:    costControlController,
		reconciliationController: reconciliationController,
		loginRateLimiter:         loginRateLimiter,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Planning routes: pure computations, no persisted state
		if r.structureController != nil && r.authMiddleware != nil {
			planning := v1.Group("")
			planning.Use(r.authMiddleware.Authenticate())
			{
				planning.POST("/structures", r.structureController.Build)
				planning.POST("/itemizations", r.itemizationController.Itemize)
				planning.POST("/contingencies", r.contingencyController.Size)
				planning.POST("/variance-analyses", r.trackingController.Analyze)
				planning.POST("/cost-control-plans", r.costControlController.Plan)
			}
		}

		// Budget lifecycle routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.POST("", r.budgetController.Create)
				budgets.GET("/:id", r.budgetController.Get)
				budgets.POST("/:id/submit", r.budgetController.SubmitForApproval)
				budgets.POST("/:id/approve", r.budgetController.Approve)
				budgets.POST("/:id/start-execution", r.budgetController.StartExecution)

				// Forecast revision log (nested under budgets)
				if r.forecastController != nil {
					budgets.POST("/:id/forecasts", r.forecastController.Update)
					budgets.GET("/:id/forecasts", r.forecastController.History)
				}

				// Reallocation workflow (nested under budgets)
				if r.reallocationController != nil {
					budgets.POST("/:id/reallocations", r.reallocationController.Submit)
					budgets.GET("/:id/audit-trail", r.reallocationController.AuditTrail)
				}

				// Post-event reconciliation (nested under budgets)
				if r.reconciliationController != nil {
					budgets.POST("/:id/reconciliation", r.reconciliationController.Reconcile)
				}
			}
		}

		// Reallocation decision route (separate path, request-scoped)
		if r.reallocationController != nil && r.authMiddleware != nil {
			reallocations := v1.Group("/reallocations")
			reallocations.Use(r.authMiddleware.Authenticate())
			{
				reallocations.POST("/:id/decision", r.reallocationController.Decide)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
