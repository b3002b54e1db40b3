package branding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

const promptTemplate = `Analyze the following website URL and suggest color palette for a QR code based on the website's brand colors.

Website URL: %s

Analyze the website's brand colors and color scheme. Based on this analysis, suggest:
1. Primary color (hex) for QR dots - should match or complement the website's primary brand color
2. Secondary color (hex) for corner squares/eyes - should match or complement the website's secondary/accent color
3. Background color (hex) - if a background color would enhance the design, suggest a hex color that matches the website's color scheme. If transparent background is better, set backgroundColor to null
4. If a gradient background would look better, set bgGradientEnabled to true and provide bgGradientSecondary color
5. Make sure the colors are not too dark or too light, they should be readable and contrast well with the background.

Return only color values in hex format.`

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"primaryColor": {
			Type:        genai.TypeString,
			Description: "Primary hex color for QR dots",
		},
		"secondaryColor": {
			Type:        genai.TypeString,
			Description: "Secondary hex color for corner squares",
		},
		"backgroundColor": {
			Type:        genai.TypeString,
			Description: "Background hex color, or null/empty string if transparent background is preferred",
		},
		"bgGradientEnabled": {
			Type:        genai.TypeBoolean,
			Description: "Whether to use a gradient background instead of solid color",
		},
		"bgGradientSecondary": {
			Type:        genai.TypeString,
			Description: "Secondary hex color for gradient (only if bgGradientEnabled is true)",
		},
	},
	Required: []string{"primaryColor", "secondaryColor"},
}

type geminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiGenerator{client: client}, nil
}

func (g *geminiGenerator) GenerateSuggestion(ctx context.Context, url string) (*Suggestion, error) {
	prompt := fmt.Sprintf(promptTemplate, url)

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   suggestionSchema,
		})
	if err != nil {
		return nil, fmt.Errorf("branding suggestion call failed: %w", err)
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(resp.Text()), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse branding suggestion: %w", err)
	}
	return &suggestion, nil
}

// NewUnconfiguredGenerator returns a Generator that fails every call.
// Used when no API key is configured so the rest of the app still runs.
func NewUnconfiguredGenerator() Generator {
	return unconfiguredGenerator{}
}

type unconfiguredGenerator struct{}

func (unconfiguredGenerator) GenerateSuggestion(context.Context, string) (*Suggestion, error) {
	return nil, errors.New("GEMINI_API_KEY is not configured")
}
