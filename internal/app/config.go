package app

import (
    "errors"
    "strings"
    "time"
)

// Config holds runtime configuration for the service. It is constructed once
// at startup and passed explicitly to everything that needs it; there is no
// ambient package-level configuration.
type Config struct {
    // HTTP
    ListenAddr    string
    AllowedOrigin string

    // OpenAI-compatible provider
    OpenAIBaseURL string
    OpenAIModel   string
    OpenAIAPIKey  string

    // Gemini provider
    GeminiModel  string
    GeminiAPIKey string

    // DefaultProvider selects which configured provider serves requests that
    // do not name one. Empty means the first configured provider.
    DefaultProvider string

    // RequestTimeout bounds the wait for a provider response per request.
    RequestTimeout time.Duration

    Verbose bool
}

// Defaults shared by flags and the file-config overlay.
const (
    DefaultListenAddr     = ":8080"
    DefaultOpenAIModel    = "gpt-4o"
    DefaultRequestTimeout = 60 * time.Second
)

// ValidateConfig checks the settings the service cannot start without.
// Missing provider credentials are intentionally terminal: the process must
// refuse traffic at startup rather than fail every request later.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.ListenAddr) == "" {
        return errors.New("config: listen address is required")
    }
    hasOpenAI := strings.TrimSpace(cfg.OpenAIAPIKey) != "" || strings.TrimSpace(cfg.OpenAIBaseURL) != ""
    hasGemini := strings.TrimSpace(cfg.GeminiAPIKey) != ""
    if !hasOpenAI && !hasGemini {
        return errors.New("config: no provider credentials configured (set OPENAI_API_KEY or GEMINI_API_KEY)")
    }
    switch cfg.DefaultProvider {
    case "":
    case "openai":
        if !hasOpenAI {
            return errors.New("config: default provider openai has no credentials")
        }
    case "gemini":
        if !hasGemini {
            return errors.New("config: default provider gemini has no credentials")
        }
    default:
        return errors.New("config: unknown default provider " + cfg.DefaultProvider)
    }
    if cfg.RequestTimeout < 0 {
        return errors.New("config: negative request timeout is not allowed")
    }
    return nil
}
