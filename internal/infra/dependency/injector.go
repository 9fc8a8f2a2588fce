// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/event-budget/backend/config"
	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/application/usecase/auth"
	"github.com/event-budget/backend/internal/application/usecase/budget"
	"github.com/event-budget/backend/internal/application/usecase/contingency"
	"github.com/event-budget/backend/internal/application/usecase/costcontrol"
	"github.com/event-budget/backend/internal/application/usecase/forecast"
	"github.com/event-budget/backend/internal/application/usecase/itemization"
	"github.com/event-budget/backend/internal/application/usecase/reallocation"
	"github.com/event-budget/backend/internal/application/usecase/reconciliation"
	"github.com/event-budget/backend/internal/application/usecase/structure"
	"github.com/event-budget/backend/internal/application/usecase/tracking"
	"github.com/event-budget/backend/internal/domain/valueobject"
	"github.com/event-budget/backend/internal/infra/server/router"
	"github.com/event-budget/backend/internal/integration/adapters"
	"github.com/event-budget/backend/internal/integration/entrypoint/controller"
	"github.com/event-budget/backend/internal/integration/entrypoint/middleware"
	"github.com/event-budget/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	redisClient, err := newRedisClient(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	// Create repositories
	budgetRepo := persistence.NewBudgetRepository(db)
	reallocationRepo := persistence.NewReallocationRepository(db)
	auditRepo := persistence.NewAuditTrailRepository(db)
	forecastRepo := persistence.NewForecastRevisionRepository(db)
	approverRepo := persistence.NewApproverRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	budgetLock := adapters.NewRedisBudgetLock(redisClient)
	clock := adapters.NewSystemClock()
	idGenerator := adapters.NewUUIDGenerator()

	var notifier adapter.NotificationService
	if cfg.Notification.Enabled && cfg.Notification.ResendAPIKey != "" {
		notifier = adapters.NewResendNotifier(
			cfg.Notification.ResendAPIKey,
			cfg.Notification.FromName,
			cfg.Notification.FromEmail,
		)
	} else {
		notifier = adapters.NewLogNotifier()
	}

	// Planning policies
	catalog := valueobject.DefaultCategoryCatalog()
	approvalTable := valueobject.DefaultApprovalThresholdTable()
	itemizationPolicy := valueobject.DefaultItemizationPolicy()
	contingencyPolicy := valueobject.DefaultContingencyPolicy()
	varianceThresholds := valueobject.DefaultVarianceThresholds()
	forecastPolicy := valueobject.DefaultForecastPolicy()
	costControlPolicy := valueobject.DefaultCostControlPolicy()

	// Create auth use cases
	registerUseCase := auth.NewRegisterApproverUseCase(approverRepo, passwordService, tokenService, clock, idGenerator)
	loginUseCase := auth.NewLoginApproverUseCase(approverRepo, passwordService, tokenService)

	// Create planning use cases
	buildStructureUseCase := structure.NewBuildStructureUseCase(catalog, approvalTable)
	itemizeUseCase := itemization.NewItemizeBudgetUseCase(itemizationPolicy)
	sizeContingencyUseCase := contingency.NewSizeContingencyUseCase(contingencyPolicy)
	analyzeVarianceUseCase := tracking.NewAnalyzeVarianceUseCase(varianceThresholds)
	planControlsUseCase := costcontrol.NewPlanControlsUseCase(costControlPolicy)

	// Create budget lifecycle use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, clock, idGenerator, catalog, itemizationPolicy)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
	submitForApprovalUseCase := budget.NewSubmitForApprovalUseCase(budgetRepo, clock)
	approveBudgetUseCase := budget.NewApproveBudgetUseCase(budgetRepo, clock, approvalTable)
	startExecutionUseCase := budget.NewStartExecutionUseCase(budgetRepo, clock)

	// Create forecast use cases
	updateForecastUseCase := forecast.NewUpdateForecastUseCase(forecastRepo, clock, idGenerator, forecastPolicy)
	forecastHistoryUseCase := forecast.NewForecastHistoryUseCase(forecastRepo)

	// Create reallocation use cases
	submitReallocationUseCase := reallocation.NewSubmitReallocationUseCase(
		budgetRepo, reallocationRepo, auditRepo, notifier, clock, idGenerator, approvalTable,
	)
	decideReallocationUseCase := reallocation.NewDecideReallocationUseCase(
		budgetRepo, reallocationRepo, auditRepo, budgetLock, notifier, clock, idGenerator,
	)
	listAuditTrailUseCase := reallocation.NewListAuditTrailUseCase(auditRepo)

	// Create reconciliation use case
	reconcileUseCase := reconciliation.NewReconcileBudgetUseCase(budgetRepo, clock)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return redisClient.Ping(context.Background()).Err() == nil
		},
	)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	structureController := controller.NewStructureController(buildStructureUseCase)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase, getBudgetUseCase, submitForApprovalUseCase, approveBudgetUseCase, startExecutionUseCase,
	)
	itemizationController := controller.NewItemizationController(itemizeUseCase)
	contingencyController := controller.NewContingencyController(sizeContingencyUseCase)
	trackingController := controller.NewTrackingController(analyzeVarianceUseCase)
	forecastController := controller.NewForecastController(updateForecastUseCase, forecastHistoryUseCase)
	reallocationController := controller.NewReallocationController(
		submitReallocationUseCase, decideReallocationUseCase, listAuditTrailUseCase,
	)
	costControlController := controller.NewCostControlController(planControlsUseCase)
	reconciliationController := controller.NewReconciliationController(reconcileUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter()
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	appRouter := router.NewRouter(
		healthController,
		authController,
		structureController,
		budgetController,
		itemizationController,
		contingencyController,
		trackingController,
		forecastController,
		reallocationController,
		costControlController,
		reconciliationController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: appRouter,
	}, nil
}

// newRedisClient builds the Redis client backing the reallocation commit lock.
func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}
