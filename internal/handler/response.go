package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"payadvice/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileKind):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_KIND", "unsupported file kind; allowed: pdf, xml"
	case errors.Is(err, domain.ErrEmptyPayload):
		return http.StatusUnprocessableEntity, "EMPTY_PAYLOAD", "payload is empty"
	case errors.Is(err, domain.ErrMalformedXML):
		return http.StatusUnprocessableEntity, "MALFORMED_XML", "payload is not well-formed XML"
	case errors.Is(err, domain.ErrRemittanceRootMissing):
		return http.StatusUnprocessableEntity, "REMITTANCE_ROOT_MISSING", "PaymentRemittanceRequest element not found in payload"
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, "FILE_NOT_FOUND", "source file not found"
	case errors.Is(err, domain.ErrTextExtractionFailed):
		return http.StatusUnprocessableEntity, "TEXT_EXTRACTION_FAILED", "could not extract text from document"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
