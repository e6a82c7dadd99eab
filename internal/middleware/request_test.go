package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"hospital-schemes-server/internal/metrics"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen, _ = GetRequestIDFromContext(c)
		c.Status(http.StatusNoContent)
	})

	existing := uuid.NewString()
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"generated when absent", "", false},
		{"kept when valid", existing, true},
		{"replaced when malformed", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("response id %q is not a uuid", got)
			}
			if got != seen {
				t.Errorf("context id %q != header id %q", seen, got)
			}
			if tt.keep && got != tt.header {
				t.Errorf("id = %q, want %q", got, tt.header)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("id %q was not regenerated", got)
			}
		})
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/v1/schemes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/schemes/1", "/api/v1/schemes/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/schemes/:id", "200")); got != 2 {
		t.Errorf("pattern counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.HTTPActiveConnections); got != 0 {
		t.Errorf("active connections = %v, want 0", got)
	}
}
