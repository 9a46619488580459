package provider

import (
	"errors"
	"fmt"

	"github.com/Digital-Shane/title-crawl/internal/listing"
)

// Error codes carried by ProviderError.
const (
	CodeNotSupported = "NOT_SUPPORTED"
	CodeUnavailable  = "UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
)

// Sentinels for errors.Is. Any *ProviderError with the same Code matches.
var (
	ErrNotSupported = &ProviderError{Code: CodeNotSupported, Message: "operation not supported by this provider"}
	ErrUnavailable  = &ProviderError{Code: CodeUnavailable, Message: "source unavailable"}
	ErrInvalidInput = &ProviderError{Code: CodeInvalidInput, Message: "invalid input"}
)

// ProviderError represents an error from a provider
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	Retry      bool
	RetryAfter int // Seconds to wait before retry
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is reports whether target is a *ProviderError with the same Code.
func (e *ProviderError) Is(target error) bool {
	var t *ProviderError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NotSupported returns the error for an operation the provider does not offer.
func NotSupported(providerName, operation string) error {
	return &ProviderError{
		Provider: providerName,
		Code:     CodeNotSupported,
		Message:  fmt.Sprintf("%s is not supported", operation),
	}
}

// Unavailable wraps a failure to reach the source. Server side and throttling
// failures are marked retryable.
func Unavailable(providerName string, err error) error {
	pe := &ProviderError{
		Provider: providerName,
		Code:     CodeUnavailable,
		Message:  "source unavailable",
		Err:      err,
	}

	var fetchErr *listing.FetchError
	if errors.As(err, &fetchErr) {
		switch {
		case fetchErr.StatusCode == 429:
			pe.Retry = true
			pe.RetryAfter = 10
		case fetchErr.StatusCode == 0 || fetchErr.StatusCode >= 500:
			pe.Retry = true
		}
	}
	return pe
}

// InvalidInput reports a bad argument such as an unparsable series URL.
func InvalidInput(providerName string, err error) error {
	return &ProviderError{
		Provider: providerName,
		Code:     CodeInvalidInput,
		Message:  "invalid input",
		Err:      err,
	}
}
