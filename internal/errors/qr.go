// Package errors defines the user-facing error taxonomy shared by the
// services and the HTTP boundary. Messages are surfaced to the client
// verbatim, so they carry the numeric limits where one applies.
package errors

import "errors"

var (
	ErrNotAuthenticated = errors.New("please log in to continue")

	// Absent and not-owned are deliberately conflated so callers
	// cannot probe for the existence of other users' records.
	ErrQRNotFound = errors.New("QR code not found or access denied")

	ErrQRLimitReached        = errors.New("QR code limit reached (4/4). Please delete an existing QR code to create a new one.")
	ErrDynamicQRLimitReached = errors.New("dynamic QR code limit reached (1/1). Please delete your active dynamic QR code to create a new one.")
	ErrAILimitReached        = errors.New("AI suggestions limit reached (2/2). You have used all your AI suggestions.")

	ErrInvalidURL = errors.New("invalid URL format")
	ErrURLTooLong = errors.New("URL is too long. Please use a shorter URL.")
	ErrEmptyName  = errors.New("QR code name cannot be empty")

	ErrTypeImmutable    = errors.New("QR code type cannot be changed after creation")
	ErrContentImmutable = errors.New("content cannot be changed for non-dynamic QR codes")

	ErrScanNotFound = errors.New("QR code not found")
	ErrScanExpired  = errors.New("QR code has expired")

	ErrAccountCreation = errors.New("account creation failed")
)
