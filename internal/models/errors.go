package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound          = errors.New("resource not found")
	ErrProfileNotFound   = errors.New("creative profile not found")
	ErrPromptNotFound    = errors.New("prompt not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrScriptNotFound    = errors.New("script not found")
	ErrExecutionNotFound = errors.New("execution not found")

	// User & Authentication Errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Generation Errors
	ErrProviderKeyMissing  = errors.New("provider API key is not configured")
	ErrEncryptionKeyAbsent = errors.New("application encryption key is not configured")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
