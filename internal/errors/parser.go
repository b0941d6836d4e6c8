package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed database error: stable code plus a message safe
// to surface to callers.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw store error into an ErrorInfo without
// leaking driver internals. context is a hint such as "trader" or
// "levy payment" used to pick a more specific message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "an unexpected error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (Postgres 23505, SQLite "UNIQUE constraint failed").
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key violation (23503).
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "a referenced record does not exist"}
	}

	// Not null violation (23502).
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "a required field is missing"}
	}

	// Check constraint violation (23514).
	if strings.Contains(errStr, "check constraint") {
		if strings.Contains(errStr, "rating") {
			return ErrorInfo{Code: FeedbackInvalidRating, Message: "rating must be between 1 and 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "input value is out of range"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "the data store is unavailable, please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "an unexpected error occurred, please try again later"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	switch {
	case strings.Contains(errStr, "tin"):
		return ErrorInfo{Code: TraderTINExists, Message: "a trader with this tax identification number already exists"}
	case strings.Contains(errStr, "qr_code"):
		return ErrorInfo{Code: TraderQRCodeExists, Message: "this QR code is already assigned to a trader"}
	case strings.Contains(errStr, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "this email address is already registered"}
	case strings.Contains(errStr, "transaction_reference"):
		return ErrorInfo{Code: LevyDuplicateReference, Message: "a payment with this transaction reference already exists"}
	case strings.Contains(errStr, "market_id") && strings.Contains(errStr, "chairmen"):
		return ErrorInfo{Code: ChairmanAlreadySet, Message: "this market already has a chairman"}
	case strings.Contains(errStr, "payment_reference"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "a subscription with this payment reference already exists"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "a record with the same unique value already exists"}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "trader"):
		return "trader not found"
	case strings.Contains(context, "market"):
		return "market not found"
	case strings.Contains(context, "collector"), strings.Contains(context, "good boy"):
		return "collector not found"
	case strings.Contains(context, "chairman"):
		return "chairman not found"
	case strings.Contains(context, "caretaker"):
		return "caretaker not found"
	case strings.Contains(context, "payment"), strings.Contains(context, "levy"):
		return "levy payment not found"
	case strings.Contains(context, "advert"):
		return "advertisement not found"
	case strings.Contains(context, "subscription"):
		return "subscription not found"
	}
	return "the requested record was not found"
}

// ParseAndRespond parses a raw error and writes it in the response
// envelope with the supplied status code.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusCode, info.Code, info.Message)
}
