package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/moodreel/moodreel/internal/domain"
	"github.com/moodreel/moodreel/internal/gemini"
)

// TextGenerator is the generative-provider surface the extractor needs.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *gemini.Schema) (string, error)
}

// Extractor implements domain.IntentExtractor over a generative-text provider.
type Extractor struct {
	client TextGenerator
	logger *slog.Logger
}

// NewExtractor creates a new intent extractor
func NewExtractor(client TextGenerator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{client: client, logger: logger}
}

// Extract sends the mood text plus the session genre vocabulary to the model
// and parses the schema-constrained response. Any failure is terminal for the
// whole search; there is no retry.
func (e *Extractor) Extract(ctx context.Context, text string, genreNames []string) (domain.Intent, error) {
	prompt := buildPrompt(text, genreNames)

	raw, err := e.client.GenerateJSON(ctx, prompt, intentSchema())
	if err != nil {
		if errors.Is(err, gemini.ErrEmptyResponse) {
			return domain.Intent{}, fmt.Errorf("%w: empty model output", domain.ErrMalformedIntent)
		}
		return domain.Intent{}, fmt.Errorf("intent extraction: %w", err)
	}

	var parsed domain.Intent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		e.logger.Warn("intent response is not valid JSON", "error", err, "response", raw)
		return domain.Intent{}, fmt.Errorf("%w: %v", domain.ErrMalformedIntent, err)
	}

	if !parsed.MediaType.Valid() {
		e.logger.Warn("intent response has unknown media type", "type", parsed.MediaType)
		return domain.Intent{}, fmt.Errorf("%w: unknown media type %q", domain.ErrMalformedIntent, parsed.MediaType)
	}

	e.logger.Debug("intent extracted",
		"type", parsed.MediaType,
		"genres", parsed.Genres,
		"keywords", parsed.Keywords,
		"year", parsed.Year)

	return parsed, nil
}
