package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeMetrics(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "capsule", "capsule_mint", "success")
	bm.RecordOperation(context.Background(), "identity", "login", "error")

	output := scrapeMetrics(t, provider)
	assert.Contains(t, output, "test_app_operations_total")
	assert.Regexp(t, `test_app_operations_total\{[^}]*domain="capsule"[^}]*\} 1`, output)
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "admin", "tier_update", 120*time.Millisecond, "success")

	output := scrapeMetrics(t, provider)
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestBusinessMetrics_RecordRateLimitRejection(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordRateLimitRejection(context.Background(), "mint")
	bm.RecordRateLimitRejection(context.Background(), "mint")
	bm.RecordRateLimitRejection(context.Background(), "auth")

	output := scrapeMetrics(t, provider)
	assert.Regexp(t, `test_app_rate_limit_rejections_total\{[^}]*route_class="mint"[^}]*\} 2`, output)
	assert.Regexp(t, `test_app_rate_limit_rejections_total\{[^}]*route_class="auth"[^}]*\} 1`, output)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	// None of these should panic
	bm.RecordOperation(context.Background(), "capsule", "capsule_mint", "success")
	bm.RecordDuration(context.Background(), "capsule", "capsule_mint", time.Second, "success")
	bm.RecordRateLimitRejection(context.Background(), "general")
}
