package gemini

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	languagepb "cloud.google.com/go/language/apiv1/languagepb"

	"github.com/datar-psa/evalreport/api"
)

// categoryNames maps Google Cloud Natural Language API category names to
// the names listed in api.ModerationCategories. Single-word categories map to themselves.
var categoryNames = map[string]string{
	"Death, Harm & Tragedy": "DeathHarmTragedy",
	"Firearms & Weapons":    "FirearmsWeapons",
	"Public Safety":         "PublicSafety",
	"Religion & Belief":     "ReligionBelief",
	"Illicit Drugs":         "IllicitDrugs",
	"War & Conflict":        "WarConflict",
}

// GoogleLanguageProvider implements ModerationProvider using Google Cloud Natural Language API client
type GoogleLanguageProvider struct {
	client *language.Client
}

// NewGoogleLanguageProvider creates a new provider using a preconfigured *language.Client (auth handled by caller)
func NewGoogleLanguageProvider(client *language.Client) *GoogleLanguageProvider {
	return &GoogleLanguageProvider{client: client}
}

// Moderate analyzes content for safety using Google Cloud Natural Language API
func (p *GoogleLanguageProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("language client is required")
	}

	req := &languagepb.ModerateTextRequest{
		Document: &languagepb.Document{
			Type: languagepb.Document_PLAIN_TEXT,
			Source: &languagepb.Document_Content{
				Content: content,
			},
		},
	}

	resp, err := p.client.ModerateText(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("moderate text failed: %w", err)
	}

	categories := make([]api.ModerationCategory, 0, len(resp.ModerationCategories))
	for _, c := range resp.ModerationCategories {
		categories = append(categories, api.ModerationCategory{
			Name:       mapCategoryName(c.Name),
			Confidence: float64(c.Confidence),
		})
	}

	return &api.ModerationResult{Categories: categories}, nil
}

// mapCategoryName returns the developer-friendly name for a Google category,
// or the original name if it is not recognized.
func mapCategoryName(googleCategory string) string {
	if name, ok := categoryNames[googleCategory]; ok {
		return name
	}
	return googleCategory
}

// Verify that GoogleLanguageProvider implements api.ModerationProvider
var _ api.ModerationProvider = (*GoogleLanguageProvider)(nil)
