package modelresp

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strings"

    "github.com/yuin/goldmark"
    "github.com/yuin/goldmark/ast"
    gmtext "github.com/yuin/goldmark/text"
)

// Reply is the structured payload extracted from raw model output. The
// batched transfer mode is resolved here, once, so nothing downstream has to
// re-check the response shape.
type Reply struct {
    Response            string
    UpdatedDocumentText string
    ImpactAnalysis      string
    Batched             bool
}

// ParseError indicates the model output did not contain the expected JSON
// envelope. It is recovered at the request boundary, never propagated past it.
type ParseError struct {
    Reason string
}

func (e *ParseError) Error() string {
    return "parse model response: " + e.Reason
}

// documentPayload is the tagged variant for the updated document: either a
// direct string or ordered batch parts that are concatenated before
// validation.
type documentPayload struct {
    direct string
    parts  []string
}

func (p documentPayload) text() string {
    if p.parts != nil {
        return strings.Join(p.parts, "")
    }
    return p.direct
}

// Parse extracts the JSON envelope from raw model output, which may be bare
// JSON or a markdown document with the JSON inside a fenced code block, and
// resolves the direct/batched document variant.
func Parse(raw string) (Reply, error) {
    jsonText := extractJSON(raw)
    if strings.TrimSpace(jsonText) == "" {
        return Reply{}, &ParseError{Reason: "no JSON object found in model output"}
    }
    var fields map[string]json.RawMessage
    if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
        return Reply{}, &ParseError{Reason: "invalid JSON envelope: " + err.Error()}
    }
    doc, batched, err := resolveDocument(fields)
    if err != nil {
        return Reply{}, err
    }
    return Reply{
        Response:            stringField(fields, "response"),
        UpdatedDocumentText: doc.text(),
        ImpactAnalysis:      stringField(fields, "impactAnalysis"),
        Batched:             batched,
    }, nil
}

func resolveDocument(fields map[string]json.RawMessage) (documentPayload, bool, error) {
    if !boolField(fields, "batched") {
        return documentPayload{direct: stringField(fields, "updatedDocumentText")}, false, nil
    }
    n := intField(fields, "batchCount")
    if n <= 0 {
        return documentPayload{}, true, &ParseError{Reason: "batched response without a positive batchCount"}
    }
    parts := make([]string, 0, n)
    for i := 1; i <= n; i++ {
        key := fmt.Sprintf("batchPart%d", i)
        s, ok := stringFieldOK(fields, key)
        if !ok {
            return documentPayload{}, true, &ParseError{Reason: "batched response missing " + key}
        }
        parts = append(parts, s)
    }
    return documentPayload{parts: parts}, true, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
    s, _ := stringFieldOK(fields, key)
    return s
}

func stringFieldOK(fields map[string]json.RawMessage, key string) (string, bool) {
    raw, ok := fields[key]
    if !ok {
        return "", false
    }
    var s string
    if err := json.Unmarshal(raw, &s); err != nil {
        return "", false
    }
    return s, true
}

func boolField(fields map[string]json.RawMessage, key string) bool {
    raw, ok := fields[key]
    if !ok {
        return false
    }
    var b bool
    if err := json.Unmarshal(raw, &b); err != nil {
        return false
    }
    return b
}

func intField(fields map[string]json.RawMessage, key string) int {
    raw, ok := fields[key]
    if !ok {
        return 0
    }
    var n int
    if err := json.Unmarshal(raw, &n); err != nil {
        return 0
    }
    return n
}

// extractJSON returns the most plausible JSON object text from raw model
// output. Fenced code blocks are found with a real markdown parse; when no
// fence carries an object, the outermost brace span of the raw text is used.
func extractJSON(raw string) string {
    src := []byte(raw)
    doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))
    var found string
    _ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
        if !entering || found != "" {
            return ast.WalkContinue, nil
        }
        fc, ok := n.(*ast.FencedCodeBlock)
        if !ok {
            return ast.WalkContinue, nil
        }
        var buf bytes.Buffer
        lines := fc.Lines()
        for i := 0; i < lines.Len(); i++ {
            seg := lines.At(i)
            buf.Write(seg.Value(src))
        }
        body := strings.TrimSpace(buf.String())
        if strings.HasPrefix(body, "{") {
            found = body
            return ast.WalkStop, nil
        }
        return ast.WalkContinue, nil
    })
    if found != "" {
        return found
    }
    // No usable fence: take the outermost object span.
    start := strings.Index(raw, "{")
    end := strings.LastIndex(raw, "}")
    if start < 0 || end <= start {
        return ""
    }
    return raw[start : end+1]
}
