package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    "github.com/oizidbih/BPNM-GenAI/internal/app"
    "github.com/oizidbih/BPNM-GenAI/internal/server"
)

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Start the editor API server",
    RunE: func(cmd *cobra.Command, _ []string) error {
        cmd.SilenceUsage = true

        // Dotenv first: flags fall back to the environment in serveConfig,
        // after these values are loaded.
        if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
            return err
        }
        cfg := serveConfig(cmd)
        if path := flagOrEnv(cmd, "config", "BPMN_GENAI_CONFIG"); path != "" {
            fc, err := app.LoadConfigFile(path)
            if err != nil {
                return err
            }
            app.ApplyFileConfig(&cfg, fc)
        }

        ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
        defer stop()

        a, err := app.New(ctx, cfg)
        if err != nil {
            // Missing credentials are a configuration error: terminal,
            // surfaced before accepting any traffic.
            log.Error().Err(err).Msg("startup failed")
            return err
        }
        defer a.Close()

        srv := &http.Server{
            Addr:              cfg.ListenAddr,
            Handler:           server.New(a.Registry, a.Pipeline, cfg.RequestTimeout, cfg.AllowedOrigin).Handler(),
            ReadHeaderTimeout: 10 * time.Second,
        }
        errCh := make(chan error, 1)
        go func() {
            log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
            errCh <- srv.ListenAndServe()
        }()

        select {
        case err := <-errCh:
            return err
        case <-ctx.Done():
            log.Info().Msg("shutting down")
            shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
            defer cancel()
            if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
                return err
            }
            return nil
        }
    },
}

// flagOrEnv prefers an explicitly set flag, then the named environment
// variable, so dotenv files loaded at startup are honored.
func flagOrEnv(cmd *cobra.Command, flagName, envName string) string {
    if s, _ := cmd.Flags().GetString(flagName); strings.TrimSpace(s) != "" {
        return strings.TrimSpace(s)
    }
    return strings.TrimSpace(os.Getenv(envName))
}

func serveConfig(cmd *cobra.Command) app.Config {
    timeout, _ := cmd.Flags().GetDuration("timeout")
    listen, _ := cmd.Flags().GetString("listen")
    model, _ := cmd.Flags().GetString("openai.model")
    return app.Config{
        ListenAddr:      listen,
        AllowedOrigin:   flagOrEnv(cmd, "cors.origin", "CORS_ORIGIN"),
        OpenAIBaseURL:   flagOrEnv(cmd, "openai.base", "OPENAI_BASE_URL"),
        OpenAIModel:     model,
        OpenAIAPIKey:    flagOrEnv(cmd, "openai.key", "OPENAI_API_KEY"),
        GeminiModel:     flagOrEnv(cmd, "gemini.model", "GEMINI_MODEL"),
        GeminiAPIKey:    flagOrEnv(cmd, "gemini.key", "GEMINI_API_KEY"),
        DefaultProvider: flagOrEnv(cmd, "provider", "DEFAULT_PROVIDER"),
        RequestTimeout:  timeout,
        Verbose:         verbose,
    }
}

func init() {
    f := serveCmd.Flags()
    f.String("listen", app.DefaultListenAddr, "address to listen on")
    f.String("config", "", "path to YAML or JSON config file (env BPMN_GENAI_CONFIG)")
    f.String("cors.origin", "", "allowed CORS origin (default *)")
    f.String("openai.base", "", "OpenAI-compatible base URL (env OPENAI_BASE_URL)")
    f.String("openai.model", app.DefaultOpenAIModel, "OpenAI model name")
    f.String("openai.key", "", "OpenAI API key (env OPENAI_API_KEY)")
    f.String("gemini.model", "", "Gemini model name (env GEMINI_MODEL)")
    f.String("gemini.key", "", "Gemini API key (env GEMINI_API_KEY)")
    f.String("provider", "", "default provider id (openai|gemini, env DEFAULT_PROVIDER)")
    f.Duration("timeout", app.DefaultRequestTimeout, "per-request provider timeout")
}
