package provider

import (
    "context"
    "errors"
    "net/http"
    "strings"

    openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the minimal interface needed to call a chat model. It mirrors
// the CreateChatCompletion method so that any OpenAI-compatible or local
// backend can be adapted, and so tests can substitute a fake.
type ChatClient interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is a Provider over an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
    Client ChatClient
    Model  string
}

// NewOpenAI builds an OpenAI provider. baseURL may point at any compatible
// server; httpClient may be nil to use the library default.
func NewOpenAI(apiKey, baseURL, model string, httpClient *http.Client) *OpenAI {
    cfg := openai.DefaultConfig(apiKey)
    if strings.TrimSpace(baseURL) != "" {
        cfg.BaseURL = baseURL
    }
    if httpClient != nil {
        cfg.HTTPClient = httpClient
    }
    return &OpenAI{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (p *OpenAI) Name() string { return "openai" }

// Generate sends the composed prompt and returns the assistant text.
func (p *OpenAI) Generate(ctx context.Context, system, user string) (string, error) {
    if p.Client == nil || strings.TrimSpace(p.Model) == "" {
        return "", errors.New("openai provider not configured")
    }
    resp, err := p.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model: p.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: system},
            {Role: openai.ChatMessageRoleUser, Content: user},
        },
        Temperature: 0.2,
        N:           1,
    })
    if err != nil {
        return "", &Error{Provider: p.Name(), Err: err}
    }
    if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
        return "", &Error{Provider: p.Name(), Err: ErrEmptyCompletion}
    }
    return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Ping lists models as a cheap connectivity and credential check. Available
// only when the underlying client supports model listing.
func (p *OpenAI) Ping(ctx context.Context) error {
    lister, ok := p.Client.(interface {
        ListModels(ctx context.Context) (openai.ModelsList, error)
    })
    if !ok {
        return nil
    }
    if _, err := lister.ListModels(ctx); err != nil {
        return &Error{Provider: p.Name(), Err: err}
    }
    return nil
}
