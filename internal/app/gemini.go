package app

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/saikiran-1508/chronicle/internal/config"
)

var globalGeminiClient *genai.Client

// ConnectGemini is non-fatal: without an API key the AI endpoints answer
// with a configuration error instead of recommendations.
func ConnectGemini() {
	cfg := config.Global().Gemini
	if cfg.APIKey == "" {
		globalLogger.Warn().Msg("gemini api key not configured, ai endpoints disabled")
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to create gemini client, ai endpoints disabled")
		return
	}

	globalGeminiClient = client
	globalLogger.Info().
		Str("model", cfg.Model).
		Msg("created gemini client")
}

func DisconnectGemini() {
	if globalGeminiClient == nil {
		return
	}
	_ = globalGeminiClient.Close()
	globalLogger.Info().Msg("closed gemini client")
}
