package errors

// Stable error code constants returned inside the response envelope.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to display
// messages; the message string alongside is advisory only.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Levy collection (LEVY_) ====================
	LevyInvalidAmount      = "LEVY_INVALID_AMOUNT"
	LevyTraderNotFound     = "LEVY_TRADER_NOT_FOUND"
	LevyTraderNotInMarket  = "LEVY_TRADER_NOT_IN_MARKET"
	LevyCollectorLocked    = "LEVY_COLLECTOR_LOCKED"
	LevyDuplicateReference = "LEVY_DUPLICATE_REFERENCE"
	LevyPaymentNotFound    = "LEVY_PAYMENT_NOT_FOUND"

	// ==================== Markets (MARKET_) ====================
	MarketNotFound        = "MARKET_NOT_FOUND"
	MarketSectionNotFound = "MARKET_SECTION_NOT_FOUND"
	ChairmanNotFound      = "CHAIRMAN_NOT_FOUND"
	ChairmanAlreadySet    = "CHAIRMAN_ALREADY_SET"
	CaretakerNotFound     = "CARETAKER_NOT_FOUND"

	// ==================== Traders (TRADER_) ====================
	TraderNotFound       = "TRADER_NOT_FOUND"
	TraderTINExists      = "TRADER_TIN_EXISTS"
	TraderQRCodeExists   = "TRADER_QR_CODE_EXISTS"
	TraderQRCodeNotFound = "TRADER_QR_CODE_NOT_FOUND"

	// ==================== Collectors (COLLECTOR_) ====================
	CollectorNotFound = "COLLECTOR_NOT_FOUND"

	// ==================== Advertisements (ADVERT_) ====================
	AdvertNotFound     = "ADVERT_NOT_FOUND"
	AdvertInvalidDates = "ADVERT_INVALID_DATES"
	AdvertNotPending   = "ADVERT_NOT_PENDING"

	// ==================== Subscriptions (SUBSCRIPTION_) ====================
	SubscriptionNotFound = "SUBSCRIPTION_NOT_FOUND"

	// ==================== Feedback (FEEDBACK_) ====================
	FeedbackNotFound      = "FEEDBACK_NOT_FOUND"
	FeedbackInvalidRating = "FEEDBACK_INVALID_RATING"

	// ==================== Pagination (PAGE_) ====================
	PageUnsortedQuery = "PAGE_UNSORTED_QUERY"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalGatewayError  = "INTERNAL_GATEWAY_ERROR"
)
