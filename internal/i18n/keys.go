// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyError       = "error"
	KeyRateLimited = "rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidAPIKey      = "auth.invalid_api_key"
	KeyAuthAPIKeyRequired     = "auth.api_key_required"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthUsernameTaken      = "auth.username_taken"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthAPITokenIssued     = "auth.api_token_issued"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Health
	KeyHealthDatabaseDown = "health.database_down"
)
