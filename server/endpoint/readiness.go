package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/component"
)

// ReadinessChecker reports whether the service can take traffic.
type ReadinessChecker func(ctx context.Context) (bool, []component.Health)

// Readiness answers 200 when ready and 503 otherwise, listing the
// components that are not healthy.
func Readiness(serviceName string, checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := true
		failing := []component.Health{}

		if checker != nil {
			var all []component.Health
			ready, all = checker(c.Request.Context())
			for _, h := range all {
				if h.Status != component.StatusHealthy {
					failing = append(failing, h)
				}
			}
		}

		status, httpStatus := "ready", http.StatusOK
		if !ready {
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"failing":   failing,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
