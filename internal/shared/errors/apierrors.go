package errors

import "net/http"

// Stable API error codes surfaced to clients. These never change once
// published; clients branch on them rather than on message text.
const (
	CodeUnexpectedError              = "UNEXPECTED_ERROR"
	CodeNotAuthenticated             = "NOT_AUTHENTICATED"
	CodeAuthenticationFailed         = "AUTHENTICATION_FAILED"
	CodeActionNotAllowed             = "ACTION_NOT_ALLOWED"
	CodeValidationFailed             = "VALIDATION_FAILED"
	CodeSessionEnded                 = "SESSION_ENDED"
	CodeOldTokenUsed                 = "OLD_TOKEN_USED"
	CodeSessionDoesNotExist          = "SESSION_NOT_EXISTS"
	CodeUserDoesNotExist             = "USER_NOT_EXISTS"
	CodePasswordIncorrect            = "PASSWORD_INCORRECT"
	CodeDevDoesNotExist              = "DEV_NOT_EXISTS"
	CodeAppDoesNotExist              = "APP_NOT_EXISTS"
	CodeTableDoesNotExist            = "TABLE_NOT_EXISTS"
	CodeTableObjectDoesNotExist      = "TABLE_OBJECT_NOT_EXISTS"
	CodeTableObjectUserAccessMissing = "TABLE_OBJECT_USER_ACCESS_NOT_EXISTS"
	CodeUUIDAlreadyInUse             = "UUID_ALREADY_IN_USE"
	CodeTableObjectIsNotFile         = "TABLE_OBJECT_IS_NOT_FILE"
	CodeContentTypeNotSupported      = "CONTENT_TYPE_NOT_SUPPORTED"
)

// NewNotAuthenticatedError reports a request without any credential.
func NewNotAuthenticatedError() *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		APICode: CodeNotAuthenticated,
		Message: "You are not authenticated",
		Code:    http.StatusUnauthorized,
	}
}

// NewAuthenticationFailedError reports a developer credential that did not
// verify (unknown api key or bad signature).
func NewAuthenticationFailedError() *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		APICode: CodeAuthenticationFailed,
		Message: "Authentication failed",
		Code:    http.StatusUnauthorized,
	}
}

// NewSessionEndedError reports a session that passed its renewal window and
// must be renewed before further use.
func NewSessionEndedError() *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		APICode: CodeSessionEnded,
		Message: "Session has ended and must be renewed",
		Code:    http.StatusForbidden,
	}
}

// NewOldTokenUsedError reports a replay of a rotated-out session token. The
// session is destroyed as a side effect of detection; this code lets clients
// distinguish revocation-due-to-compromise from plain invalidity.
func NewOldTokenUsedError() *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		APICode: CodeOldTokenUsed,
		Message: "Can't use old access token",
		Code:    http.StatusForbidden,
	}
}

// NewSessionDoesNotExistError reports a token that matches no session.
func NewSessionDoesNotExistError() *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		APICode: CodeSessionDoesNotExist,
		Message: "Session does not exist",
		Code:    http.StatusNotFound,
	}
}

// NewActionNotAllowedError reports an ownership, grant, or app mismatch.
func NewActionNotAllowedError() *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		APICode: CodeActionNotAllowed,
		Message: "Action not allowed",
		Code:    http.StatusForbidden,
	}
}

// NewEntityNotFoundError builds a not-found error with the given API code.
func NewEntityNotFoundError(code, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		APICode: code,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewUUIDAlreadyInUseError reports a client-supplied uuid collision.
func NewUUIDAlreadyInUseError() *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		APICode: CodeUUIDAlreadyInUse,
		Message: "UUID already in use",
		Code:    http.StatusConflict,
	}
}
