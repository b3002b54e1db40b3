// Package branding wraps the one outbound generative-model call that
// proposes a color palette for a URL, gated by the per-user AI quota.
package branding

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/repositories"
	"qrmint/internal/services/quota"
)

// maxLogoBytes bounds how much of a logo response is read.
const maxLogoBytes = 2 << 20

// Service exposes the AI branding advisor and the logo fetcher.
type Service interface {
	// Suggest returns a palette suggestion for the URL. The user's AI
	// quota is checked before the call and the counter incremented
	// only after a successful one. No retry on failure.
	Suggest(ctx context.Context, user *models.User, rawURL string) (*Suggestion, error)

	// FetchLogo downloads an image and returns it as a data URI, or
	// "" when the fetch fails. Failures are not errors to the caller.
	FetchLogo(ctx context.Context, rawURL string) string
}

type service struct {
	users     repositories.UserRepository
	generator Generator
	http      *http.Client
}

// NewService creates a new branding service instance
func NewService(users repositories.UserRepository, generator Generator) Service {
	if users == nil {
		panic("user repository is required")
	}
	if generator == nil {
		panic("generator is required")
	}
	return &service{
		users:     users,
		generator: generator,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *service) Suggest(ctx context.Context, user *models.User, rawURL string) (*Suggestion, error) {
	if user.AISuggestionsUsed >= quota.MaxAISuggestions {
		return nil, domainErrors.ErrAILimitReached
	}

	sanitized, err := SanitizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.generator.GenerateSuggestion(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("AI suggestion failed: %w", err)
	}

	// Canonicalize: empty background means transparent.
	if suggestion.BackgroundColor != nil && *suggestion.BackgroundColor == "" {
		suggestion.BackgroundColor = nil
	}

	// Increment only on success. The conditional write refuses to
	// cross the limit if a concurrent request got there first.
	updated, err := s.users.IncrementAISuggestions(ctx, user.ID, quota.MaxAISuggestions)
	if err != nil {
		log.Printf("failed to increment ai_suggestions_used for user %s: %v", user.ID, err)
	} else if !updated {
		log.Printf("ai suggestion counter already at limit for user %s", user.ID)
	}

	return suggestion, nil
}

func (s *service) FetchLogo(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("error fetching logo: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		log.Printf("error reading logo body: %v", err)
		return ""
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(body)
}
