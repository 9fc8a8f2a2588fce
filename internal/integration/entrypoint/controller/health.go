// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports liveness of the API and its backing stores.
type HealthController struct {
	checkDatabase  func() bool
	checkLockStore func() bool
}

// HealthResponse is the GET /health payload. The lock store entry covers
// the Redis instance used for reallocation commit locks.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	LockStore string `json:"lock_store"`
	Timestamp string `json:"timestamp"`
}

func NewHealthController(checkDatabase, checkLockStore func() bool) *HealthController {
	return &HealthController{
		checkDatabase:  checkDatabase,
		checkLockStore: checkLockStore,
	}
}

// Check handles GET /health. Degraded dependencies are reported in the
// payload without failing the request.
func (h *HealthController) Check(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  stateLabel(h.checkDatabase),
		LockStore: stateLabel(h.checkLockStore),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func stateLabel(check func() bool) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
