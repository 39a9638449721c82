// Package sanitize screens free-text food queries before they are sent to the
// AI provider. It protects the provider's instruction channel from prompt
// injection; it is advisory cleanup, not a full security boundary.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// SecurityError reports a query that was rejected before any network call.
type SecurityError struct {
	Phrase string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("query rejected: contains disallowed phrase %q", e.Phrase)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// injectionPhrases are matched case-insensitively against the cleaned query.
// Presence of any phrase aborts the request.
var injectionPhrases = []string{
	"ignore all previous instructions",
	"ignore previous instructions",
	"forget everything you were told",
	"system instruction",
	"system prompt",
	"act as",
	"you are now",
	"reveal your prompt",
	"disregard your instructions",
}

// Clean strips HTML/script-like tags, trims surrounding whitespace and scans
// for prompt-injection phrases. It returns a *SecurityError when disallowed
// content is found; callers must not contact the provider in that case.
func Clean(query string) (string, error) {
	cleaned := tagPattern.ReplaceAllString(query, "")
	cleaned = strings.TrimSpace(cleaned)

	lowered := strings.ToLower(cleaned)
	for _, phrase := range injectionPhrases {
		if strings.Contains(lowered, phrase) {
			return "", &SecurityError{Phrase: phrase}
		}
	}

	return cleaned, nil
}
