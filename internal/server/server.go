package server

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/oizidbih/BPNM-GenAI/internal/bpmn"
    "github.com/oizidbih/BPNM-GenAI/internal/modelresp"
    "github.com/oizidbih/BPNM-GenAI/internal/prompt"
    "github.com/oizidbih/BPNM-GenAI/internal/provider"
)

// Server handles the inbound editor API. Every response carries some
// renderable document text: the updated document when the pipeline accepts
// it, otherwise the caller-supplied original.
type Server struct {
    registry      *provider.Registry
    pipeline      *bpmn.Pipeline
    timeout       time.Duration
    allowedOrigin string
}

// New builds a Server. timeout bounds the wait for a provider response;
// allowedOrigin is the CORS origin, "*" when empty.
func New(registry *provider.Registry, pipeline *bpmn.Pipeline, timeout time.Duration, allowedOrigin string) *Server {
    if allowedOrigin == "" {
        allowedOrigin = "*"
    }
    return &Server{registry: registry, pipeline: pipeline, timeout: timeout, allowedOrigin: allowedOrigin}
}

// Handler returns the routed handler with CORS and request-id middleware
// applied.
func (s *Server) Handler() http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/api/genai", s.handleGenAI)
    mux.HandleFunc("/api/providers", s.handleProviders)
    mux.HandleFunc("/healthz", s.handleHealthz)
    return s.cors(withRequestID(mux))
}

type genAIRequest struct {
    DocumentText       string   `json:"documentText"`
    SelectedElementIDs []string `json:"selectedElementIds"`
    Prompt             string   `json:"prompt"`
    ProviderID         string   `json:"providerId,omitempty"`
}

type genAIResponse struct {
    Response            string `json:"response"`
    UpdatedDocumentText string `json:"updatedDocumentText"`
    Error               string `json:"error,omitempty"`
}

type providersResponse struct {
    Providers []string `json:"providers"`
    Default   string   `json:"default"`
}

type generateOutcome struct {
    text string
    err  error
}

func (s *Server) handleGenAI(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.Header().Set("Allow", http.MethodPost)
        writeJSON(w, http.StatusMethodNotAllowed, genAIResponse{Error: "method not allowed"})
        return
    }
    logger := zerolog.Ctx(r.Context())

    var req genAIRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeJSON(w, http.StatusBadRequest, genAIResponse{Error: "invalid request body: " + err.Error()})
        return
    }
    if strings.TrimSpace(req.DocumentText) == "" {
        writeJSON(w, http.StatusBadRequest, genAIResponse{Error: "documentText is required"})
        return
    }
    if strings.TrimSpace(req.Prompt) == "" {
        writeJSON(w, http.StatusBadRequest, genAIResponse{
            UpdatedDocumentText: req.DocumentText,
            Error:               "prompt is required",
        })
        return
    }

    prov, err := s.registry.Get(req.ProviderID)
    if err != nil {
        writeJSON(w, http.StatusBadRequest, genAIResponse{
            UpdatedDocumentText: req.DocumentText,
            Error:               err.Error(),
        })
        return
    }

    system := prompt.System()
    user := prompt.User(prompt.Input{
        DocumentText:       req.DocumentText,
        SelectedElementIDs: req.SelectedElementIDs,
        UserPrompt:         req.Prompt,
    })

    // The provider call is detached from the request context on purpose: a
    // timeout here only abandons the result, it does not abort the call.
    callCtx := context.WithoutCancel(r.Context())
    outcome := make(chan generateOutcome, 1)
    go func() {
        text, err := prov.Generate(callCtx, system, user)
        outcome <- generateOutcome{text: text, err: err}
    }()

    timer := time.NewTimer(s.timeout)
    defer timer.Stop()
    select {
    case out := <-outcome:
        s.finishGenAI(w, logger, req, prov.Name(), out)
    case <-timer.C:
        // The select is the response-already-sent guard: exactly one branch
        // writes. The drain goroutine discards the late result so the
        // provider goroutine can finish.
        logger.Warn().Str("provider", prov.Name()).Dur("timeout", s.timeout).Msg("provider timed out")
        writeJSON(w, http.StatusGatewayTimeout, genAIResponse{
            Response:            "The model did not respond in time, so your diagram was left unchanged. Please try again.",
            UpdatedDocumentText: req.DocumentText,
            Error:               "provider timeout",
        })
        go func() {
            out := <-outcome
            logger.Warn().Err(out.err).Str("provider", prov.Name()).Msg("late provider response discarded")
        }()
    }
}

// finishGenAI turns a provider outcome into the API response. All failures
// are recovered here; the client always receives renderable document text.
func (s *Server) finishGenAI(w http.ResponseWriter, logger *zerolog.Logger, req genAIRequest, provName string, out generateOutcome) {
    if out.err != nil {
        logger.Error().Err(out.err).Str("provider", provName).Msg("provider call failed")
        writeJSON(w, http.StatusBadGateway, genAIResponse{
            Response:            "The model request failed, so your diagram was left unchanged.",
            UpdatedDocumentText: req.DocumentText,
            Error:               out.err.Error(),
        })
        return
    }

    reply, err := modelresp.Parse(out.text)
    if err != nil {
        var perr *modelresp.ParseError
        reason := err.Error()
        if errors.As(err, &perr) {
            reason = perr.Reason
        }
        logger.Error().Str("provider", provName).Str("reason", reason).Msg("model response not parseable")
        writeJSON(w, http.StatusBadGateway, genAIResponse{
            Response:            "The model returned an unreadable answer, so your diagram was left unchanged.",
            UpdatedDocumentText: req.DocumentText,
            Error:               err.Error(),
        })
        return
    }

    // A reply without document text is a conversational answer; the diagram
    // stays as it was.
    if strings.TrimSpace(reply.UpdatedDocumentText) == "" {
        writeJSON(w, http.StatusOK, genAIResponse{
            Response:            reply.Response,
            UpdatedDocumentText: req.DocumentText,
        })
        return
    }

    res := s.pipeline.Run(reply.UpdatedDocumentText)
    if !res.Valid {
        logger.Warn().Str("provider", provName).Str("diagnostic", res.Error).Msg("generated document rejected")
        writeJSON(w, http.StatusOK, genAIResponse{
            Response:            annotate(reply.Response, "The generated diagram failed validation and was discarded ("+res.Error+"). Your previous diagram was kept."),
            UpdatedDocumentText: req.DocumentText,
        })
        return
    }

    message := reply.Response
    if res.Rebuilt {
        message = annotate(message, "The generated diagram needed repair: it was simplified to its process content and the layout will be recalculated.")
    }
    if reply.ImpactAnalysis != "" {
        message = annotate(message, "Impact: "+reply.ImpactAnalysis)
    }
    logger.Info().Str("provider", provName).Bool("sanitized", res.Sanitized).Bool("rebuilt", res.Rebuilt).Int("attempts", len(res.Attempts)).Msg("document accepted")
    writeJSON(w, http.StatusOK, genAIResponse{
        Response:            message,
        UpdatedDocumentText: res.Text,
    })
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.Header().Set("Allow", http.MethodGet)
        writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
        return
    }
    writeJSON(w, http.StatusOK, providersResponse{
        Providers: s.registry.Available(),
        Default:   s.registry.Default(),
    })
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func annotate(message, note string) string {
    if strings.TrimSpace(message) == "" {
        return note
    }
    return message + "\n\n" + note
}

func writeJSON(w http.ResponseWriter, status int, body any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    if err := json.NewEncoder(w).Encode(body); err != nil {
        log.Error().Err(err).Msg("write response")
    }
}
