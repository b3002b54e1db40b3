package qr

import (
	"time"

	"qrmint/internal/models"
)

// DynamicLifetime is how long a dynamic QR code's scan URL stays live.
// Fixed at creation; edits do not renew it.
const DynamicLifetime = 15 * 24 * time.Hour

// ScanPathPrefix is the public path segment scan URLs are built from.
const ScanPathPrefix = "/dynamic/scan/"

// SaveRequest carries the caller-supplied values for a create or
// update. QRID empty means create. For dynamic codes URL is the real
// destination the scan URL should redirect to.
type SaveRequest struct {
	QRID     string          `json:"qrId"`
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	Settings models.Settings `json:"settings"`
}
