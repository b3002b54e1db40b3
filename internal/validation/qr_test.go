package validation

import (
	"strings"
	"testing"

	domainErrors "qrmint/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	got, err := ValidateName("  My QR  ")
	assert.NoError(t, err)
	assert.Equal(t, "My QR", got)

	_, err = ValidateName("   ")
	assert.ErrorIs(t, err, domainErrors.ErrEmptyName)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"https url", "https://example.com/page", nil},
		{"http url", "http://localhost:3000/x", nil},
		{"empty", "", domainErrors.ErrInvalidURL},
		{"no scheme", "example.com", domainErrors.ErrInvalidURL},
		{"unsupported scheme", "ftp://example.com", domainErrors.ErrInvalidURL},
		{"too long", "https://example.com/" + strings.Repeat("a", MaxURLLength), domainErrors.ErrURLTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
