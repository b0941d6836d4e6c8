package paystack

import "time"

// InitializeRequest represents the parameters for the transaction
// initialize API. Amount is in the currency subunit (kobo).
type InitializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// InitializeData is the payload of a successful initialize response.
type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyData is the payload of a verify response. Status is one of
// "success", "failed", "abandoned".
type VerifyData struct {
	Status          string     `json:"status"`
	Reference       string     `json:"reference"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Channel         string     `json:"channel"`
	PaidAt          *time.Time `json:"paid_at"`
	GatewayResponse string     `json:"gateway_response"`
}

// apiEnvelope is the wrapper Paystack puts around every response body.
type apiEnvelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Transaction verification outcomes recognised by callers.
const (
	VerifyStatusSuccess   = "success"
	VerifyStatusFailed    = "failed"
	VerifyStatusAbandoned = "abandoned"
)
