package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper every endpoint returns.
// Exactly one of Data / Error is populated.
type Envelope struct {
	IsSuccessful bool        `json:"isSuccessful"`
	Data         interface{} `json:"data"`
	Error        *ErrorBody  `json:"error"`
}

// ErrorBody carries the stable error code plus an advisory message.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// RespondSuccess wraps data in the success envelope.
func RespondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		IsSuccessful: true,
		Data:         data,
	})
}

// RespondWithError wraps a failure in the error envelope.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, Envelope{
		IsSuccessful: false,
		Error: &ErrorBody{
			StatusCode: statusCode,
			Code:       errorCode,
			Message:    message,
		},
	})
}

// Shorthand helpers for the handful of statuses the core produces.

func OK(c *gin.Context, data interface{}) {
	RespondSuccess(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	RespondSuccess(c, http.StatusCreated, data)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "an unexpected error occurred, please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
