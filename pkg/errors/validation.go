package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateGraphID parses a graph identifier taken from a URL or command line.
// Identifiers are non-negative decimal integers.
func ValidateGraphID(raw string) (int, error) {
	if raw == "" {
		return 0, New(ErrCodeInvalidInput, "graph id cannot be empty")
	}

	const maxIDLength = 18
	if len(raw) > maxIDLength {
		return 0, New(ErrCodeInvalidInput, "graph id too long (max %d digits)", maxIDLength)
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, New(ErrCodeInvalidInput, "graph id must be a non-negative integer: %q", raw)
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "invalid graph id %q", raw)
	}
	return id, nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and no control characters.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "URL contains invalid characters")
		}
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
