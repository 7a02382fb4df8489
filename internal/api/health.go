package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: liveness probe (always 200 OK).
//   - /readyz: readiness probe; every check must pass.
type HealthHandler struct {
	checks []func() error
}

// NewHealthHandler constructs a HealthHandler. Nil checks are ignored, so an
// optional dependency (e.g. a disabled database) can be passed as nil.
//
// Typical checks: the ingestion outcome and db.Ping of the report sink.
func NewHealthHandler(checks ...func() error) *HealthHandler {
	h := &HealthHandler{}
	for _, c := range checks {
		if c != nil {
			h.checks = append(h.checks, c)
		}
	}
	return h
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: 200 OK when every check passes, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe
	// @Summary      Readiness probe
	// @Description  Returns ready once the price lists are loaded and the report sink (if enabled) is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		for _, check := range h.checks {
			if err := check(); err != nil {
				c.JSON(503, gin.H{"status": "degraded", "reason": err.Error()})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
