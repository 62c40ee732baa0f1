package mw

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"laundry-report-backend/internal/metrics"
)

// Metrics records request latency into the shared Prometheus histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
