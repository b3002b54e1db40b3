package branding

import "context"

// Suggestion is a color palette proposal for a QR code, derived from a
// website's brand colors. BackgroundColor nil means transparent.
type Suggestion struct {
	PrimaryColor        string  `json:"primaryColor"`
	SecondaryColor      string  `json:"secondaryColor"`
	BackgroundColor     *string `json:"backgroundColor"`
	BgGradientEnabled   bool    `json:"bgGradientEnabled"`
	BgGradientSecondary string  `json:"bgGradientSecondary,omitempty"`
}

// Generator produces a palette suggestion for a sanitized URL. The
// production implementation calls the Gemini API; tests stub it.
type Generator interface {
	GenerateSuggestion(ctx context.Context, url string) (*Suggestion, error)
}
