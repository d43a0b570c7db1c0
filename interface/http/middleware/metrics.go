package middleware

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

var httpRequestsInFlight atomic.Int64

func init() {
	metrics.NewGauge(`http_requests_in_flight`, func() float64 {
		return float64(httpRequestsInFlight.Load())
	})
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpRequestsInFlight.Add(1)
		defer httpRequestsInFlight.Add(-1)

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := sanitizeLabel(c.Request.Method)
		// Route template, not the raw path: recipient names stay out of label values.
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		path = sanitizeLabel(path)

		labels := `handler="` + path + `",method="` + method + `",status="` + status + `"`

		metrics.GetOrCreateCounter(`http_requests_total{` + labels + `}`).Inc()
		metrics.GetOrCreateHistogram(`http_request_duration_seconds{handler="` + path + `",method="` + method + `"}`).Update(duration)
	}
}

func sanitizeLabel(v string) string {
	return strings.ReplaceAll(v, `"`, `_`)
}
