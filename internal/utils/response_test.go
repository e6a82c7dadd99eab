package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/store"
)

func TestStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("get scheme: %w", store.ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("create scheme: %w", store.ErrDuplicateName), http.StatusConflict},
		{"foreign key", fmt.Errorf("enroll: %w", store.ErrForeignKey), http.StatusUnprocessableEntity},
		{"validation", &store.ValidationError{Field: "amt_claimed", Reason: "must not be negative"}, http.StatusBadRequest},
		{"storage", fmt.Errorf("list schemes: %w: %v", store.ErrStorageUnavailable, errors.New("database is closed")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schemes", nil)

			StoreError(c, tt.err, "Scheme not found")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	RegisterValidators()

	type payload struct {
		Name string `json:"name" binding:"required,notblank"`
	}
	tests := []struct {
		body string
		ok   bool
	}{
		{`{"name":"PMJAY"}`, true},
		{`{"name":"   "}`, false},
		{`{}`, false},
		{`{"name":`, false},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		c.Request.Header.Set("Content-Type", "application/json")

		var p payload
		if got := BindAndValidate(c, &p); got != tt.ok {
			t.Errorf("BindAndValidate(%s) = %v, want %v", tt.body, got, tt.ok)
		}
		if !tt.ok && w.Code != http.StatusBadRequest {
			t.Errorf("BindAndValidate(%s) status = %d, want 400", tt.body, w.Code)
		}
	}
}
