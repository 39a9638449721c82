package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorCategory is one of the fixed user-facing failure categories.
type ErrorCategory string

const (
	CategoryRateLimited         ErrorCategory = "rate_limited"
	CategoryUnauthorized        ErrorCategory = "unauthorized"
	CategoryContentBlocked      ErrorCategory = "content_blocked"
	CategoryProviderUnavailable ErrorCategory = "provider_unavailable"
	CategoryNetworkError        ErrorCategory = "network_error"
	CategoryDataError           ErrorCategory = "data_error"
	CategoryUnknown             ErrorCategory = "unknown"
)

// categoryMessages are the static, non-technical messages surfaced to users.
// Raw provider payloads and stack traces never reach the UI.
var categoryMessages = map[ErrorCategory]string{
	CategoryRateLimited:         "The analysis service is receiving too many requests right now. Please wait a moment and try again.",
	CategoryUnauthorized:        "The analysis service could not be reached due to a credential problem. Please try again later.",
	CategoryContentBlocked:      "This query could not be analyzed. Please rephrase it and try again.",
	CategoryProviderUnavailable: "The analysis service is temporarily unavailable. Please try again in a few minutes.",
	CategoryNetworkError:        "A network problem interrupted the analysis. Check your connection and try again.",
	CategoryDataError:           "The analysis result could not be read. Please try again.",
	CategoryUnknown:             "Something went wrong during the analysis. Please try again.",
}

// ClassifiedError is the single error type surfaced by the gateway. Its
// message is safe to show to end users.
type ClassifiedError struct {
	Category ErrorCategory
	Message  string
	cause    error
}

func (e *ClassifiedError) Error() string { return e.Message }

func (e *ClassifiedError) Unwrap() error { return e.cause }

// ProviderError is a raw transport-level failure from the provider, carrying
// the HTTP status and response body before classification.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed with status %d: %s", e.StatusCode, e.Message)
}

// ErrNoResponse is returned when the provider answers with an empty body.
var ErrNoResponse = errors.New("provider returned an empty response")

// ErrNoCurrentAnalysis is returned when a deep analysis is requested before a
// completed primary analysis exists.
var ErrNoCurrentAnalysis = errors.New("no completed analysis to deepen")

// MalformedResponseError is returned when the provider body is not parseable
// JSON or not a JSON object.
type MalformedResponseError struct {
	cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("provider returned a malformed response: %v", e.cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.cause }

// Classify maps a raw gateway failure to its user-facing category. The checks
// are order-sensitive and the first match wins: RateLimited, Unauthorized,
// ContentBlocked, ProviderUnavailable, NetworkError, DataError, Unknown.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var already *ClassifiedError
	if errors.As(err, &already) {
		return already
	}

	status := 0
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		status = provErr.StatusCode
	}
	msg := strings.ToLower(err.Error())

	category := CategoryUnknown
	switch {
	case status == 429 || containsAny(msg, "quota", "rate limit", "exhausted"):
		category = CategoryRateLimited
	case status == 401 || status == 403 || containsAny(msg, "api key", "unauthorized", "forbidden"):
		category = CategoryUnauthorized
	case containsAny(msg, "safety", "blocked", "candidate was blocked"):
		category = CategoryContentBlocked
	case status >= 500 || isTimeout(err) || containsAny(msg, "unavailable", "overloaded"):
		category = CategoryProviderUnavailable
	case containsAny(msg, "fetch", "network", "offline"):
		category = CategoryNetworkError
	case isJSONError(err) || containsAny(msg, "json", "parse", "unexpected token"):
		category = CategoryDataError
	}

	return &ClassifiedError{
		Category: category,
		Message:  categoryMessages[category],
		cause:    err,
	}
}

func containsAny(msg string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}

// isTimeout treats request expiry as provider unavailability.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isJSONError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var malformed *MalformedResponseError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &malformed)
}
