package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hospital-schemes-server/internal/store"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Error:   errorMessage,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, errorMessage string) {
	Error(c, http.StatusConflict, errorMessage)
}

// UnprocessableEntity sends a 422 Unprocessable Entity error response.
func UnprocessableEntity(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnprocessableEntity, errorMessage)
}

// ServiceUnavailable sends a 503 Service Unavailable error response.
func ServiceUnavailable(c *gin.Context, errorMessage string) {
	Error(c, http.StatusServiceUnavailable, errorMessage)
}

// StoreError translates a store error into the matching HTTP response.
// notFound is the message used for ErrNotFound.
func StoreError(c *gin.Context, err error, notFound string) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, notFound)
	case errors.Is(err, store.ErrDuplicateName):
		Conflict(c, "A scheme with this name already exists")
	case errors.Is(err, store.ErrForeignKey):
		UnprocessableEntity(c, "Referenced patient or scheme does not exist")
	case errors.As(err, &verr):
		BadRequest(c, "Validation failed: "+verr.Error())
	case errors.Is(err, store.ErrValidation):
		BadRequest(c, "Validation failed")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Storage failure")
		_ = c.Error(err)
		ServiceUnavailable(c, "Storage is unavailable, please retry")
	}
}
