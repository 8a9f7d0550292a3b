package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the provider credential is missing or a placeholder.
	ErrConfiguration = errors.New("forecast provider is not configured")
	// ErrTransport is returned when the request could not complete.
	ErrTransport = errors.New("forecast request failed")
	// ErrProvider is matched by every *ProviderError.
	ErrProvider = errors.New("forecast provider error")
	// ErrDataShape is returned when a payload arrived but carries no usable samples.
	ErrDataShape = errors.New("forecast data is unusable")
)

// ProviderError is a non-success answer from the provider, or a body that could not be read.
type ProviderError struct {
	StatusCode int
	Message    string
}

// NewProviderError keeps the provider's message verbatim when present.
func NewProviderError(status int, message string) *ProviderError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &ProviderError{StatusCode: status, Message: message}
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}
