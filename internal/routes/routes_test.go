package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/config"
	"hospital-schemes-server/internal/metrics"
	"hospital-schemes-server/internal/middleware"
	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/testutil"
)

func newTestRouter(t *testing.T, withMetrics bool) (*gin.Engine, *store.Store, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var m *metrics.Metrics
	var opts []store.Option
	if withMetrics {
		m = metrics.New()
		opts = append(opts, store.WithRecorder(m))
	}
	s := testutil.SetupTestStore(t, opts...)
	cfg := &config.Config{Origin: "http://localhost:5000"}
	return NewRouter(s, cfg, m), s, m
}

func TestHealth(t *testing.T) {
	r, s, _ := newTestRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response is missing the request id header")
	}

	_ = s.Close()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

func TestMetricsRouteOnlyWhenEnabled(t *testing.T) {
	r, _, _ := newTestRouter(t, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/metrics", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	r, _, _ = newTestRouter(t, true)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/api/v1/schemes", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/metrics", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	for _, want := range []string{
		`http_requests_total{endpoint="/api/v1/schemes",method="GET",status="200"} 1`,
		`store_operations_total{operation="list schemes",result="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestDashboardFlow(t *testing.T) {
	r, s, _ := newTestRouter(t, true)
	schemeID := testutil.CreateTestScheme(t, s, "Ayushman Bharat", "2018-09-23")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodPost, "/api/v1/patients", map[string]any{
		"name": "Asha Devi",
		"dob":  "1990-04-15",
		"enrollment": map[string]any{
			"schemeId":   schemeID,
			"enrollDate": "2024-01-10",
			"amtClaimed": "1500.00",
		},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/api/v1/dashboard", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var dash testutil.Envelope[models.Dashboard]
	testutil.AssertJSON(t, w, &dash)
	if dash.Data.TotalPatients != 1 || dash.Data.TotalSchemes != 1 {
		t.Errorf("totals = (%d, %d), want (1, 1)", dash.Data.TotalPatients, dash.Data.TotalSchemes)
	}
	if dash.Data.TotalClaimed.StringFixed(2) != "1500.00" {
		t.Errorf("totalClaimed = %s, want 1500.00", dash.Data.TotalClaimed.StringFixed(2))
	}
	if len(dash.Data.RecentEnrollments) != 1 || dash.Data.RecentEnrollments[0].PatientName != "Asha Devi" {
		t.Errorf("recentEnrollments = %+v", dash.Data.RecentEnrollments)
	}
	if dash.Data.Degraded {
		t.Error("dashboard reported degraded")
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(t, false)

	req := testutil.MakeRequest(http.MethodOptions, "/api/v1/schemes", nil, map[string]string{
		"Origin":                        "http://localhost:5000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:5000", got)
	}
}
