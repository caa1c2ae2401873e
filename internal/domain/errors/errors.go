package errors

import (
	"net/http"

	"croptrade/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"This email is already registered",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	// Authentication-related errors
	ErrAuthNotFound = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_NOT_FOUND",
		"No sign-in method found for this account",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrRefreshTokenNotFound = NewBaseError(
		http.StatusNotFound,
		"REFRESH_TOKEN_NOT_FOUND",
		"Refresh token not found",
		"",
	)

	ErrRefreshTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED",
		"Refresh token has expired",
		"",
	)

	ErrSessionLimitExceeded = NewBaseError(
		http.StatusTooManyRequests,
		"SESSION_LIMIT_EXCEEDED",
		"Maximum number of signed-in devices reached",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet strength requirements",
		"",
	)

	ErrPasswordForbiddenWords = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS",
		"Password contains forbidden words or patterns",
		"",
	)

	// Role and onboarding errors
	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Role must be farmer, buyer or transporter",
		"",
	)

	ErrRoleAlreadyAssigned = NewBaseError(
		http.StatusConflict,
		"ROLE_ALREADY_ASSIGNED",
		"A role has already been chosen for this account",
		"",
	)

	ErrRoleRequired = NewBaseError(
		http.StatusConflict,
		"ROLE_REQUIRED",
		"Choose a role before continuing",
		"",
	)

	ErrNotTransporter = NewBaseError(
		http.StatusConflict,
		"NOT_TRANSPORTER",
		"Vehicle details can only be registered by transporters",
		"",
	)

	ErrVehicleAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"VEHICLE_ALREADY_REGISTERED",
		"Vehicle details have already been registered",
		"",
	)

	ErrTransporterNotFound = NewBaseError(
		http.StatusNotFound,
		"TRANSPORTER_NOT_FOUND",
		"Transporter details not found",
		"",
	)

	// Profile errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"Profile not found",
		"",
	)

	ErrAvatarTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"AVATAR_TOO_LARGE",
		"Avatar image must be smaller than 5MB",
		"",
	)

	ErrPaymentIDMissing = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_ID_MISSING",
		"Add a UPI payment ID to your profile first",
		"",
	)

	// Marketplace errors
	ErrCropNotFound = NewBaseError(
		http.StatusNotFound,
		"CROP_NOT_FOUND",
		"Crop listing not found",
		"",
	)

	ErrCropOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"CROP_OWNERSHIP_VIOLATION",
		"You do not own this crop listing",
		"",
	)

	ErrInvalidCropStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CROP_STATUS",
		"Unknown crop status",
		"",
	)

	// Transport request errors
	ErrTransportRequestNotFound = NewBaseError(
		http.StatusNotFound,
		"TRANSPORT_REQUEST_NOT_FOUND",
		"Transport request not found",
		"",
	)

	ErrRequestAlreadyTaken = NewBaseError(
		http.StatusConflict,
		"REQUEST_ALREADY_TAKEN",
		"Another transporter already accepted this request",
		"",
	)

	ErrRequestNotAssigned = NewBaseError(
		http.StatusForbidden,
		"REQUEST_NOT_ASSIGNED",
		"This request is assigned to a different transporter",
		"",
	)

	ErrIllegalStatusTransition = NewBaseError(
		http.StatusConflict,
		"ILLEGAL_STATUS_TRANSITION",
		"The request cannot move to that status from its current one",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
