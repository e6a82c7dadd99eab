package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hospital-schemes-server/internal/config"
	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
)

// TestDatabaseConfig points at a fresh SQLite file inside t.TempDir.
func TestDatabaseConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "hospital_schemes_test.db"),
		MaxOpenConns:   4,
		ConnectTimeout: 5 * time.Second,
	}
	dsn, err := config.BuildDSN(cfg)
	if err != nil {
		t.Fatalf("Failed to build test DSN: %v", err)
	}
	cfg.DSN = dsn
	return cfg
}

// SetupTestStore opens a migrated store on a fresh database. It is closed
// when the test ends.
func SetupTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	s, err := store.Open(TestDatabaseConfig(t), opts...)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := models.ParseDate(value)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", value, err)
	}
	return d
}

// Amount parses a decimal amount or fails the test.
func Amount(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("Bad test amount %q: %v", value, err)
	}
	return d
}

// CreateTestScheme inserts a scheme and returns its id.
func CreateTestScheme(t *testing.T, s *store.Store, name, startDate string) uint {
	t.Helper()

	id, err := s.CreateScheme(context.Background(), store.SchemeInput{
		Name:      name,
		StartDate: Date(t, startDate),
	})
	if err != nil {
		t.Fatalf("Failed to create test scheme %q: %v", name, err)
	}
	return id
}

// CreateTestPatient inserts a patient and returns its id.
func CreateTestPatient(t *testing.T, s *store.Store, name, dob string) uint {
	t.Helper()

	id, err := s.CreatePatient(context.Background(), store.PatientInput{
		Name:        name,
		DateOfBirth: Date(t, dob),
	})
	if err != nil {
		t.Fatalf("Failed to create test patient %q: %v", name, err)
	}
	return id
}

// EnrollTestPatient enrolls a patient and returns the enrollment id.
func EnrollTestPatient(t *testing.T, s *store.Store, patientID, schemeID uint, date, amount string) uint {
	t.Helper()

	id, err := s.Enroll(context.Background(), patientID, store.EnrollmentInput{
		SchemeID:   schemeID,
		EnrollDate: Date(t, date),
		AmtClaimed: Amount(t, amount),
	})
	if err != nil {
		t.Fatalf("Failed to enroll patient %d in scheme %d: %v", patientID, schemeID, err)
	}
	return id
}

// CountRows counts the rows of a model's table.
func CountRows(t *testing.T, s *store.Store, model any) int64 {
	t.Helper()

	var n int64
	if err := s.DB().Model(model).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// Envelope mirrors utils.ResponseData with a typed payload.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
