package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"
	ErrCodeRegistrationFailed     = "registration_failed"
	ErrCodeLoginFailed            = "login_failed"
	ErrCodeRefreshFailed          = "refresh_failed"
	ErrCodeAlreadyExists          = "already_exists"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Session errors
	ErrCodeSessionNotFound     = "session_not_found"
	ErrCodeSessionComplete     = "session_complete"
	ErrCodeEmptySelection      = "empty_selection"
	ErrCodeNoQuestions         = "no_questions"
	ErrCodeInvalidChoice       = "invalid_choice"
	ErrCodeSessionStartFailed  = "session_start_failed"
	ErrCodeSessionFinishFailed = "session_finish_failed"

	// History errors
	ErrCodeHistoryFetchFailed = "history_fetch_failed"
	ErrCodeExportFailed       = "export_failed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
