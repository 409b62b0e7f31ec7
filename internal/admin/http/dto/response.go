package dto

import (
	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
)

// HealthResponse represents the system health report in HTTP responses.
// Durations are reported in milliseconds.
type HealthResponse struct {
	Status            string  `json:"status"`
	DatabaseLatencyMS float64 `json:"database_latency_ms"`
	LimiterStore      string  `json:"limiter_store"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// MapHealthReportToResponse converts a health report to its response form.
func MapHealthReportToResponse(report *adminDomain.HealthReport) HealthResponse {
	status := "degraded"
	if report.DatabaseHealthy {
		status = "healthy"
	}
	return HealthResponse{
		Status:            status,
		DatabaseLatencyMS: float64(report.DatabaseLatency.Microseconds()) / 1000,
		LimiterStore:      report.LimiterStore,
		UptimeSeconds:     report.Uptime.Seconds(),
	}
}
