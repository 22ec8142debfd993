package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrGatewayDisabled   = errors.New("payment method is not available")
	ErrInsufficientStock = errors.New("not enough stock to fulfil the order")

	ErrMissingAPIKey = errors.New("payment gateway API key is missing")
	ErrInvalidOrder  = errors.New("order cannot be paid")
	ErrProvider      = errors.New("payment provider failed to create a checkout session")
)

type ErrorKind string

const (
	KindMissingAPIKey ErrorKind = "missing_api_key"
	KindInvalidOrder  ErrorKind = "invalid_order"
	KindProviderError ErrorKind = "provider_error"
	KindInternal      ErrorKind = "internal"
)

// Kind classifies a checkout failure. It returns the empty kind for a nil error.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAPIKey):
		return KindMissingAPIKey
	case errors.Is(err, ErrInvalidOrder):
		return KindInvalidOrder
	case errors.Is(err, ErrProvider):
		return KindProviderError
	default:
		return KindInternal
	}
}

// ProviderError is returned for every failure reported by the payment provider.
// Message never contains the merchant's API key, Err keeps the SDK error for operators.
type ProviderError struct {
	Code       string
	Message    string
	HTTPStatus int
	RequestID  string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider error [%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// Redact replaces every occurrence of secret in message.
func Redact(message, secret string) string {
	if secret == "" {
		return message
	}
	return strings.ReplaceAll(message, secret, "[REDACTED]")
}
