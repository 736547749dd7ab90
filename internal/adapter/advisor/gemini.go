// Package advisor produces the narrative summary of a round chain with a
// generative model.
package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/iho/opencap/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// TextGenerator turns a prompt into model text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini generates text with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGemini creates a Gemini API client.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Gemini{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.4)),
		},
	}, nil
}

// Generate sends prompt to the model and returns its text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}

// Advisor implements usecase.Advisor on top of a TextGenerator.
type Advisor struct {
	generator TextGenerator
	retrier   *Retrier
	timeout   time.Duration
	logger    zerolog.Logger
}

// New creates an Advisor.
func New(generator TextGenerator, retrier *Retrier, logger zerolog.Logger) *Advisor {
	return &Advisor{
		generator: generator,
		retrier:   retrier,
		logger:    logger,
	}
}

// WithTimeout bounds each Analyze call, retries included. Zero means no
// bound beyond the caller's context.
func (a *Advisor) WithTimeout(d time.Duration) *Advisor {
	a.timeout = d
	return a
}

// Analyze asks the model for a dilution narrative of rounds.
func (a *Advisor) Analyze(ctx context.Context, rounds []*domain.Round, currency domain.Currency) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(rounds, currency)

	var text string
	err := a.retrier.Retry(ctx, func() error {
		out, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = CleanText(out)
		return nil
	})
	if err != nil {
		return "", err
	}

	a.logger.Debug().Int("rounds", len(rounds)).Int("chars", len(text)).Msg("model analysis received")
	return text, nil
}
