package response

import (
	"time"

	"github.com/gin-gonic/gin"

	"guild-hub-api/internal/dto"
)

// ctxKeyRequestStart is set by the router for response-time reporting
const ctxKeyRequestStart = "request_start"

// SuccessResponse is the envelope for all successful responses
type SuccessResponse struct {
	Data         interface{}             `json:"data"`
	Success      bool                    `json:"success"`
	ResponseTime float64                 `json:"responseTime"`
	Pagination   *dto.PaginationMetadata `json:"pagination,omitempty"`
}

// ErrorEntry is a single error item in an error response
type ErrorEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// ErrorResponse is the envelope for all error responses
type ErrorResponse struct {
	Success bool         `json:"success"`
	Errors  []ErrorEntry `json:"errors"`
}

// SetRequestStart records the request start time for response-time reporting
func SetRequestStart(c *gin.Context) {
	c.Set(ctxKeyRequestStart, time.Now())
}

func elapsedMillis(c *gin.Context) float64 {
	if v, ok := c.Get(ctxKeyRequestStart); ok {
		if start, ok := v.(time.Time); ok {
			return float64(time.Since(start).Microseconds()) / 1000.0
		}
	}
	return 0
}

// SendSuccess sends a successful response with the standard envelope
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Data:         data,
		Success:      true,
		ResponseTime: elapsedMillis(c),
	})
}

// SendPaged sends a successful paginated response
func SendPaged(c *gin.Context, statusCode int, data interface{}, pagination *dto.PaginationMetadata) {
	c.JSON(statusCode, SuccessResponse{
		Data:         data,
		Success:      true,
		ResponseTime: elapsedMillis(c),
		Pagination:   pagination,
	})
}

// SendError sends an error response with the standard envelope
func SendError(c *gin.Context, statusCode int, code, description string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Errors: []ErrorEntry{
			{Code: code, Description: description, Kind: kindForCode(code)},
		},
	})
}

// kindForCode classifies an error code into the coarse error taxonomy
func kindForCode(code string) string {
	switch code {
	case ErrCodeValidation:
		return "validation"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "conflict"
	case ErrCodeForbidden:
		return "forbidden"
	case ErrCodeUnauthorized:
		return "unauthorized"
	default:
		return "failure"
	}
}
