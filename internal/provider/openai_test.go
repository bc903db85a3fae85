package provider

import (
    "context"
    "errors"
    "testing"

    openai "github.com/sashabaranov/go-openai"
)

// fakeChatClient returns the configured response or error for any request,
// recording the last request for assertions.
type fakeChatClient struct {
    resp    openai.ChatCompletionResponse
    err     error
    lastReq openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    f.lastReq = req
    return f.resp, f.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
    return openai.ChatCompletionResponse{
        Choices: []openai.ChatCompletionChoice{
            {Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
        },
    }
}

func TestOpenAI_Generate(t *testing.T) {
    fake := &fakeChatClient{resp: chatResponse(`  {"response":"ok"}` + "\n")}
    p := &OpenAI{Client: fake, Model: "test-model"}
    out, err := p.Generate(context.Background(), "system msg", "user msg")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out != `{"response":"ok"}` {
        t.Fatalf("expected trimmed assistant content, got %q", out)
    }
    if fake.lastReq.Model != "test-model" {
        t.Fatalf("model not forwarded, got %q", fake.lastReq.Model)
    }
    if len(fake.lastReq.Messages) != 2 || fake.lastReq.Messages[0].Role != openai.ChatMessageRoleSystem {
        t.Fatalf("expected system+user messages, got %+v", fake.lastReq.Messages)
    }
}

func TestOpenAI_GenerateWrapsTransportFailure(t *testing.T) {
    boom := errors.New("quota exceeded")
    p := &OpenAI{Client: &fakeChatClient{err: boom}, Model: "test-model"}
    _, err := p.Generate(context.Background(), "s", "u")
    var perr *Error
    if !errors.As(err, &perr) {
        t.Fatalf("expected *Error, got %v", err)
    }
    if perr.Provider != "openai" || !errors.Is(err, boom) {
        t.Fatalf("error should name the provider and wrap the cause: %v", err)
    }
}

func TestOpenAI_GenerateEmptyCompletion(t *testing.T) {
    p := &OpenAI{Client: &fakeChatClient{resp: openai.ChatCompletionResponse{}}, Model: "test-model"}
    _, err := p.Generate(context.Background(), "s", "u")
    if !errors.Is(err, ErrEmptyCompletion) {
        t.Fatalf("expected ErrEmptyCompletion, got %v", err)
    }
}

func TestOpenAI_GenerateUnconfigured(t *testing.T) {
    p := &OpenAI{}
    if _, err := p.Generate(context.Background(), "s", "u"); err == nil {
        t.Fatalf("expected error for unconfigured provider")
    }
}
