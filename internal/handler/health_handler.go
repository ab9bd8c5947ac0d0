package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/pkg/response"
)

// StoreCheck pings one backing store. Optional stores never fail readiness.
type StoreCheck struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

// HealthHandler reports process and store status.
type HealthHandler struct {
	checks  []StoreCheck
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(checks ...StoreCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second, now: time.Now}
}

// serviceFlags are the static availability flags of the API modules.
var serviceFlags = map[string]string{
	"challenges": "active",
	"ratings":    "active",
	"lecturers":  "active",
	"courses":    "active",
	"reports":    "active",
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	stores, ok := h.ping(c.Request.Context())
	database := "connected"
	if !ok {
		database = "disconnected"
	}
	response.JSON(c, http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"database":  database,
		"stores":    stores,
		"services":  serviceFlags,
	})
}

// Ready answers 503 while a required store is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	stores, ok := h.ping(c.Request.Context())
	status := http.StatusOK
	state := "ready"
	if !ok {
		status = http.StatusServiceUnavailable
		state = "unavailable"
	}
	c.JSON(status, gin.H{"status": state, "stores": stores})
}

func (h *HealthHandler) ping(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	stores := make(map[string]string, len(h.checks))
	ok := true
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			stores[check.Name] = "disconnected"
			if check.Required {
				ok = false
			}
			continue
		}
		stores[check.Name] = "connected"
	}
	return stores, ok
}
