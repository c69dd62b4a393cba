package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fikshb/LSPLMS-sub000/internal/config"
)

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, errors.New("empty response from model")
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var drafts []DraftQuestion
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		log.WithError(err).Error("Failed to decode generated question JSON")
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	log.Infof("Generated %d draft questions", len(drafts))
	return drafts, nil
}
