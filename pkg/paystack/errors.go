package paystack

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrTransactionNotFound is returned when the reference is unknown to Paystack.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUnauthorized is returned when the secret key is rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid secret key")

	// ErrGatewayFailure is returned when Paystack reports a non-successful call.
	ErrGatewayFailure = errors.New("payment gateway request failed")
)
