package paystack

// Config represents the configuration for the Paystack client.
type Config struct {
	// SecretKey is the Paystack secret key used as a bearer token.
	SecretKey string

	// BaseURL is the Paystack API base URL.
	BaseURL string

	// CallbackURL is the redirect URL Paystack sends the payer to
	// after checkout.
	CallbackURL string
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrInvalidRequest
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
