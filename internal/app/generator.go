package app

import (
	"context"
	"fmt"

	"github.com/Dee1911/Aspire.can/internal/platform/gemini"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/openai"
	"github.com/Dee1911/Aspire.can/internal/services"
)

// NewGenerator returns the configured generation backend. A missing API key
// is logged and yields a nil generator so the CRUD API still serves.
func NewGenerator(ctx context.Context, cfg GenerationConfig, log *logger.Logger) (services.Generator, error) {
	switch cfg.Provider {
	case ProviderNone:
		log.Warn("Generation disabled; recommendation endpoints will fail")
		return nil, nil
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			log.Warn("OPENAI_API_KEY not set; recommendation endpoints will fail")
			return nil, nil
		}
		c, err := openai.New(log, cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		return c, nil
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			log.Warn("GEMINI_API_KEY not set; recommendation endpoints will fail")
			return nil, nil
		}
		c, err := gemini.New(ctx, log, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported GENERATION_PROVIDER %q", cfg.Provider)
	}
}
