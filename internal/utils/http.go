package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every auth endpoint answers with
type Response struct {
	Success           bool        `json:"success"`
	Message           string      `json:"message,omitempty"`
	Details           interface{} `json:"details,omitempty"`
	AttemptsRemaining *int        `json:"attemptsRemaining,omitempty"`
}

// SuccessResponse sends {success:true} with an optional message
func SuccessResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
	})
}

// ErrorResponseHandler sends {success:false, message}
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, Response{
		Success: false,
		Message: errorMessage,
	})
}

// ErrorResponseWithDetails sends {success:false, message, details}
func ErrorResponseWithDetails(c echo.Context, statusCode int, errorMessage string, details interface{}) error {
	return c.JSON(statusCode, Response{
		Success: false,
		Message: errorMessage,
		Details: details,
	})
}

// InvalidCodeResponse sends a 400 carrying the remaining attempt budget
func InvalidCodeResponse(c echo.Context, errorMessage string, attemptsRemaining int) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success:           false,
		Message:           errorMessage,
		AttemptsRemaining: &attemptsRemaining,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// TooManyRequestsResponse sends a 429 Too Many Requests response
func TooManyRequestsResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Too many requests"
	}
	return ErrorResponseHandler(c, http.StatusTooManyRequests, errorMessage)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, errorMessage)
}

// ServiceUnavailableResponse sends a 503 Service Unavailable response
func ServiceUnavailableResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Service unavailable"
	}
	return ErrorResponseHandler(c, http.StatusServiceUnavailable, errorMessage)
}
