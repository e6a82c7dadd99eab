package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", notBlank)
		}
	})
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var errorMessages []string
		for _, e := range errs {
			if e.Param() != "" {
				errorMessages = append(errorMessages, fmt.Sprintf("%s must satisfy %s=%s", e.Field(), e.Tag(), e.Param()))
				continue
			}
			errorMessages = append(errorMessages, fmt.Sprintf("%s must satisfy %s", e.Field(), e.Tag()))
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			BadRequest(c, "Validation failed: "+FormatValidationError(err))
			return false
		}
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}
