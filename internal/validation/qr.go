// Package validation contains input validation helpers shared by the
// services.
package validation

import (
	"net/url"
	"strings"

	domainErrors "qrmint/internal/errors"
)

// MaxURLLength bounds every URL accepted by the application.
const MaxURLLength = 2048

// ValidateName trims and validates a QR code name.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domainErrors.ErrEmptyName
	}
	return trimmed, nil
}

// ValidateURL checks that a destination is an absolute http(s) URL of
// bounded length.
func ValidateURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domainErrors.ErrInvalidURL
	}
	if len(trimmed) > MaxURLLength {
		return domainErrors.ErrURLTooLong
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return domainErrors.ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domainErrors.ErrInvalidURL
	}
	return nil
}
