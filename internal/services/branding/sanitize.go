package branding

import (
	"net/url"
	"strings"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/validation"
)

// SanitizeURL reduces a raw URL to scheme://host/path, dropping the
// query string and fragment so oversized inputs cannot blow up the
// outbound request. Rejects unparsable input and results longer than
// the application-wide URL bound.
func SanitizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domainErrors.ErrInvalidURL
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", domainErrors.ErrInvalidURL
	}

	sanitized := u.Scheme + "://" + u.Hostname() + u.EscapedPath()
	if len(sanitized) > validation.MaxURLLength {
		return "", domainErrors.ErrURLTooLong
	}
	return sanitized, nil
}
