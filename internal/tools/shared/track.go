package shared

import (
	"time"

	"hermes/internal/metrics"
)

// Track records latency and outcome of a tool execution and passes the
// result through. Call it on the way out of a tool handler.
func Track(tool string, start time.Time, res Result) Result {
	metrics.ToolLatency.WithLabelValues(tool).Observe(time.Since(start).Seconds())

	status := "success"
	if res.Status != "success" {
		status = "error"
	}
	metrics.ToolExecutions.WithLabelValues(tool, status).Inc()

	return res
}
