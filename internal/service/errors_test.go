package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatusCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category ErrorCategory
	}{
		{"429 wins regardless of message", &ProviderError{StatusCode: 429, Message: "totally fine"}, CategoryRateLimited},
		{"401", &ProviderError{StatusCode: 401, Message: "nope"}, CategoryUnauthorized},
		{"403", &ProviderError{StatusCode: 403, Message: "nope"}, CategoryUnauthorized},
		{"500", &ProviderError{StatusCode: 500, Message: "boom"}, CategoryProviderUnavailable},
		{"503", &ProviderError{StatusCode: 503, Message: "boom"}, CategoryProviderUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cls := Classify(tc.err)
			require.NotNil(t, cls)
			assert.Equal(t, tc.category, cls.Category)
			assert.Equal(t, categoryMessages[tc.category], cls.Message)
		})
	}
}

func TestClassifyMessageKeywords(t *testing.T) {
	cases := []struct {
		msg      string
		category ErrorCategory
	}{
		{"resource exhausted, quota exceeded", CategoryRateLimited},
		{"invalid API key provided", CategoryUnauthorized},
		{"the candidate was blocked for safety reasons", CategoryContentBlocked},
		{"model is overloaded", CategoryProviderUnavailable},
		{"network connection lost, client offline", CategoryNetworkError},
		{"unexpected token at position 4", CategoryDataError},
		{"completely novel failure", CategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			cls := Classify(errors.New(tc.msg))
			assert.Equal(t, tc.category, cls.Category)
		})
	}
}

func TestClassifyOrderSensitivity(t *testing.T) {
	// A message matching both RateLimited and NetworkError keywords must
	// classify as RateLimited: first match wins.
	cls := Classify(errors.New("network quota exceeded"))
	assert.Equal(t, CategoryRateLimited, cls.Category)
}

func TestClassifyJSONSyntaxError(t *testing.T) {
	var out map[string]any
	err := json.Unmarshal([]byte("{not json"), &out)
	require.Error(t, err)

	cls := Classify(err)
	assert.Equal(t, CategoryDataError, cls.Category)
}

func TestClassifyMalformedResponse(t *testing.T) {
	err := &MalformedResponseError{cause: fmt.Errorf("response is not a JSON object")}
	cls := Classify(err)
	assert.Equal(t, CategoryDataError, cls.Category)
}

func TestClassifyTimeout(t *testing.T) {
	cls := Classify(fmt.Errorf("request failed: %w", context.DeadlineExceeded))
	assert.Equal(t, CategoryProviderUnavailable, cls.Category)
}

func TestClassifyIsIdempotent(t *testing.T) {
	first := Classify(&ProviderError{StatusCode: 429, Message: "quota"})
	second := Classify(first)
	assert.Same(t, first, second)
}

func TestClassifiedMessageIsNotTechnical(t *testing.T) {
	cls := Classify(&ProviderError{StatusCode: 500, Message: `{"error":{"status":"INTERNAL"}}`})
	assert.NotContains(t, cls.Message, "INTERNAL")
	assert.NotContains(t, cls.Message, "500")
}
