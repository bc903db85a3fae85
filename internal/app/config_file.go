package app

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and environment variables.
type FileConfig struct {
    Server struct {
        Listen        string `yaml:"listen" json:"listen"`
        AllowedOrigin string `yaml:"allowedOrigin" json:"allowedOrigin"`
    } `yaml:"server" json:"server"`

    OpenAI struct {
        BaseURL string `yaml:"base" json:"base"`
        Model   string `yaml:"model" json:"model"`
        APIKey  string `yaml:"key" json:"key"`
    } `yaml:"openai" json:"openai"`

    Gemini struct {
        Model  string `yaml:"model" json:"model"`
        APIKey string `yaml:"key" json:"key"`
    } `yaml:"gemini" json:"gemini"`

    Provider struct {
        Default string        `yaml:"default" json:"default"`
        Timeout time.Duration `yaml:"timeout" json:"timeout"`
    } `yaml:"provider" json:"provider"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch filepath.Ext(path) {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON.
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset or still at their default. Flags should already
// have been parsed; this lets the file supply defaults while preserving
// explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }
    if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Server.Listen != "" {
        cfg.ListenAddr = fc.Server.Listen
    }
    if cfg.AllowedOrigin == "" && fc.Server.AllowedOrigin != "" {
        cfg.AllowedOrigin = fc.Server.AllowedOrigin
    }

    if cfg.OpenAIBaseURL == "" && fc.OpenAI.BaseURL != "" {
        cfg.OpenAIBaseURL = fc.OpenAI.BaseURL
    }
    if (cfg.OpenAIModel == "" || cfg.OpenAIModel == DefaultOpenAIModel) && fc.OpenAI.Model != "" {
        cfg.OpenAIModel = fc.OpenAI.Model
    }
    if cfg.OpenAIAPIKey == "" && fc.OpenAI.APIKey != "" {
        cfg.OpenAIAPIKey = fc.OpenAI.APIKey
    }

    if cfg.GeminiModel == "" && fc.Gemini.Model != "" {
        cfg.GeminiModel = fc.Gemini.Model
    }
    if cfg.GeminiAPIKey == "" && fc.Gemini.APIKey != "" {
        cfg.GeminiAPIKey = fc.Gemini.APIKey
    }

    if cfg.DefaultProvider == "" && fc.Provider.Default != "" {
        cfg.DefaultProvider = fc.Provider.Default
    }
    if (cfg.RequestTimeout == 0 || cfg.RequestTimeout == DefaultRequestTimeout) && fc.Provider.Timeout > 0 {
        cfg.RequestTimeout = fc.Provider.Timeout
    }
    if !cfg.Verbose && fc.Verbose {
        cfg.Verbose = true
    }
}
