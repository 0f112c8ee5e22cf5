package apperrors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrValidationRejected   = errors.New("generated SQL is invalid or unsafe")
	ErrExecutionFailed      = errors.New("query execution failed")
	ErrGenerationFailed     = errors.New("failed to generate response")
	ErrScrapeFailed         = errors.New("failed to scrape any URLs")
	ErrNotConnected         = errors.New("no active database connection")
)
