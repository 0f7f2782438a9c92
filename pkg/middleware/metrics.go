package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"mothwallet/pkg/metrics"
)

// MetricsMiddleware records HTTP metrics for each request, labelled by route
// pattern rather than raw path.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.IncrementInFlight()
		defer m.DecrementInFlight()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
