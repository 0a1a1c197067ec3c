package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("provider token expired or invalid")
	ErrUnsupported           = errors.New("operation not supported by provider")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrTokenExchange         = errors.New("token exchange failed")
	ErrProviderNotConfigured = errors.New("provider not configured")
)
