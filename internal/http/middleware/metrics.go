package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "live_api_requests_total",
			Help: "Total HTTP requests served, by method, route and status",
		},
		[]string{"method", "path", "status"},
	)
	storeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "live_api_store_failures_total",
			Help: "Persistence calls that failed and degraded to defaults",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(storeFailures)
}

// StoreFailure counts a degraded persistence call.
func StoreFailure(op string) {
	storeFailures.WithLabelValues(op).Inc()
}

// Metrics counts every request. Unrouted paths share a single label value so
// client probing cannot grow the series set unbounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unrouted"
		}
		httpRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
