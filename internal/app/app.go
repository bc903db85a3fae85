package app

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/rs/zerolog/log"

    "github.com/oizidbih/BPNM-GenAI/internal/bpmn"
    "github.com/oizidbih/BPNM-GenAI/internal/provider"
)

// App owns the process-wide state: the provider registry and the validation
// pipeline. It is built once at startup and injected into the request
// handlers instead of living in package-level singletons.
type App struct {
    Config   Config
    Registry *provider.Registry
    Pipeline *bpmn.Pipeline
}

// New validates the configuration, constructs the configured providers and
// runs a best-effort connectivity preflight. A missing credential for every
// provider is terminal; an unreachable backend is only a warning.
func New(ctx context.Context, cfg Config) (*App, error) {
    if err := ValidateConfig(cfg); err != nil {
        return nil, err
    }
    if cfg.RequestTimeout == 0 {
        cfg.RequestTimeout = DefaultRequestTimeout
    }

    var providers []provider.Provider
    if strings.TrimSpace(cfg.OpenAIAPIKey) != "" || strings.TrimSpace(cfg.OpenAIBaseURL) != "" {
        model := cfg.OpenAIModel
        if model == "" {
            model = DefaultOpenAIModel
        }
        providers = append(providers, provider.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, NewProviderHTTPClient()))
    }
    if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
        g, err := provider.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
        if err != nil {
            return nil, fmt.Errorf("init gemini provider: %w", err)
        }
        providers = append(providers, g)
    }

    registry, err := provider.NewRegistry(cfg.DefaultProvider, providers...)
    if err != nil {
        return nil, err
    }

    // Preflight is best-effort: warn and continue so the service can come up
    // while a backend is still starting.
    pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := registry.Preflight(pctx); err != nil {
        log.Warn().Err(err).Msg("provider preflight failed; continuing")
    } else {
        log.Info().Strs("providers", registry.Available()).Str("default", registry.Default()).Msg("providers ready")
    }

    return &App{Config: cfg, Registry: registry, Pipeline: bpmn.NewPipeline()}, nil
}

// Close releases provider resources. The current backends hold no persistent
// connections beyond their HTTP pools, so this is a lifecycle hook only.
func (a *App) Close() {}
