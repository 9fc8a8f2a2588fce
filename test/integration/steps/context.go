// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

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
	"github.com/event-budget/backend/internal/integration/persistence/model"
	"github.com/event-budget/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var serverOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db
var testRedis *redislib.Client

// testContext holds per-scenario state.
type testContext struct {
	client  *http.Client
	headers map[string]string

	response *response

	accessToken       string
	currentApproverID uuid.UUID
	budgetID          uuid.UUID
	requestID         string
	revisionID        string
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions and per-scenario hooks.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()
		test.before()
		return ctx, nil
	})

	// Approver setup steps
	ctx.Given(`^an approver exists with email "([^"]*)" and role "([^"]*)"$`, test.anApproverExistsWithEmailAndRole)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Budget setup steps
	ctx.Given(`^a budget in status "([^"]*)" exists with total "([^"]*)"$`, test.aBudgetInStatusExistsWithTotal)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.theResponseFieldShouldHaveElements)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentApproverID = uuid.Nil
	t.budgetID = uuid.Nil
	t.requestID = ""
	t.revisionID = ""

	if err := testDB.Reset(); err != nil {
		panic("failed to reset test database: " + err.Error())
	}
	if err := mock.ClearRedis(testRedis); err != nil {
		panic("failed to reset test redis: " + err.Error())
	}
}

// startServer wires the full application against the in-memory database and
// embedded Redis, once for the whole suite.
func startServer() {
	serverOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb(map[string]any{
			"budgets":               &model.BudgetModel{},
			"budget_categories":     &model.CategoryModel{},
			"line_items":            &model.LineItemModel{},
			"reallocation_requests": &model.ReallocationRequestModel{},
			"audit_entries":         &model.AuditEntryModel{},
			"forecast_revisions":    &model.ForecastRevisionModel{},
			"approvers":             &model.ApproverModel{},
		})
		testRedis = mock.NewRedis()

		// Repositories
		budgetRepo := persistence.NewBudgetRepository(testDB.Conn)
		reallocationRepo := persistence.NewReallocationRepository(testDB.Conn)
		auditRepo := persistence.NewAuditTrailRepository(testDB.Conn)
		forecastRepo := persistence.NewForecastRevisionRepository(testDB.Conn)
		approverRepo := persistence.NewApproverRepository(testDB.Conn)

		// Adapters
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(testJWTSecret, 12*time.Hour)
		budgetLock := adapters.NewRedisBudgetLock(testRedis)
		clock := adapters.NewSystemClock()
		idGenerator := adapters.NewUUIDGenerator()
		notifier := adapters.NewLogNotifier()

		// Policies
		catalog := valueobject.DefaultCategoryCatalog()
		approvalTable := valueobject.DefaultApprovalThresholdTable()
		itemizationPolicy := valueobject.DefaultItemizationPolicy()
		contingencyPolicy := valueobject.DefaultContingencyPolicy()
		varianceThresholds := valueobject.DefaultVarianceThresholds()
		forecastPolicy := valueobject.DefaultForecastPolicy()
		costControlPolicy := valueobject.DefaultCostControlPolicy()

		// Use cases
		registerUseCase := auth.NewRegisterApproverUseCase(approverRepo, passwordService, tokenService, clock, idGenerator)
		loginUseCase := auth.NewLoginApproverUseCase(approverRepo, passwordService, tokenService)

		buildStructureUseCase := structure.NewBuildStructureUseCase(catalog, approvalTable)
		itemizeUseCase := itemization.NewItemizeBudgetUseCase(itemizationPolicy)
		sizeContingencyUseCase := contingency.NewSizeContingencyUseCase(contingencyPolicy)
		analyzeVarianceUseCase := tracking.NewAnalyzeVarianceUseCase(varianceThresholds)
		planControlsUseCase := costcontrol.NewPlanControlsUseCase(costControlPolicy)

		createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, clock, idGenerator, catalog, itemizationPolicy)
		getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
		submitForApprovalUseCase := budget.NewSubmitForApprovalUseCase(budgetRepo, clock)
		approveBudgetUseCase := budget.NewApproveBudgetUseCase(budgetRepo, clock, approvalTable)
		startExecutionUseCase := budget.NewStartExecutionUseCase(budgetRepo, clock)

		updateForecastUseCase := forecast.NewUpdateForecastUseCase(forecastRepo, clock, idGenerator, forecastPolicy)
		forecastHistoryUseCase := forecast.NewForecastHistoryUseCase(forecastRepo)

		submitReallocationUseCase := reallocation.NewSubmitReallocationUseCase(
			budgetRepo, reallocationRepo, auditRepo, notifier, clock, idGenerator, approvalTable,
		)
		decideReallocationUseCase := reallocation.NewDecideReallocationUseCase(
			budgetRepo, reallocationRepo, auditRepo, budgetLock, notifier, clock, idGenerator,
		)
		listAuditTrailUseCase := reallocation.NewListAuditTrailUseCase(auditRepo)

		reconcileUseCase := reconciliation.NewReconcileBudgetUseCase(budgetRepo, clock)

		// Controllers
		healthController := controller.NewHealthController(
			func() bool { return testDB != nil && testDB.Conn != nil },
			func() bool { return testRedis != nil },
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

		// Middleware
		loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
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
		engine := r.Setup("test")
		testServer = httptest.NewServer(engine)
	})
}
