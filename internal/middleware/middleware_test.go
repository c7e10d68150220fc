package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"builders-panel/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newEngine(m Middleware, cors CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Recovery(), m.RequestLog(), m.Metrics(), CORS(cors))
	r.GET("/api/v1/notifications", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://panel.example.com", "*.builders.local"}
	r := newEngine(New(log.NewNop(), nil, nil), cfg)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"exact origin", http.MethodGet, "https://panel.example.com", http.StatusOK, "https://panel.example.com"},
		{"wildcard subdomain", http.MethodGet, "https://ops.builders.local", http.StatusOK, "https://ops.builders.local"},
		{"unknown origin", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://panel.example.com", http.StatusNoContent, "https://panel.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/notifications", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_PreflightHeaders(t *testing.T) {
	r := newEngine(New(log.NewNop(), nil, nil), DefaultCORSConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notifications", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "GET, POST, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestRecovery(t *testing.T) {
	r := newEngine(New(log.NewNop(), nil, nil), DefaultCORSConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code"`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(log.NewNop(), nil, reg)
	r := newEngine(m, DefaultCORSConfig())

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.metrics.requests.WithLabelValues("/api/v1/notifications", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.requests.WithLabelValues("unmatched", "GET", "404")))
}
