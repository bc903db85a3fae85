package provider

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini is a Provider over the Google GenAI SDK.
type Gemini struct {
    client *genai.Client
    model  string
}

// NewGemini builds a Gemini provider against the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
    if strings.TrimSpace(apiKey) == "" {
        return nil, errors.New("gemini api key is required")
    }
    client, err := genai.NewClient(ctx, &genai.ClientConfig{
        APIKey:  apiKey,
        Backend: genai.BackendGeminiAPI,
    })
    if err != nil {
        return nil, fmt.Errorf("create genai client: %w", err)
    }
    if strings.TrimSpace(model) == "" {
        model = defaultGeminiModel
    }
    return &Gemini{client: client, model: model}, nil
}

func (p *Gemini) Name() string { return "gemini" }

// Generate sends the composed prompt with the system message as a system
// instruction and returns the response text.
func (p *Gemini) Generate(ctx context.Context, system, user string) (string, error) {
    if p.client == nil {
        return "", errors.New("gemini provider not configured")
    }
    cfg := &genai.GenerateContentConfig{
        SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
        Temperature:       genai.Ptr[float32](0.2),
    }
    resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), cfg)
    if err != nil {
        return "", &Error{Provider: p.Name(), Err: err}
    }
    text := strings.TrimSpace(resp.Text())
    if text == "" {
        return "", &Error{Provider: p.Name(), Err: ErrEmptyCompletion}
    }
    return text, nil
}
